package menu

import "context"

// RecentEntity is an entity the user visited lately.
type RecentEntity struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RecentProvider returns the entities recently visited by the current user.
type RecentProvider interface {
	RecentEntities(ctx context.Context) ([]RecentEntity, error)
}

// TrashCounter counts the entities in the trash.
type TrashCounter interface {
	CountDeleted(ctx context.Context) (int, error)
}

// IconResolver maps an icon name to its URL.
type IconResolver func(name string) string

// DefaultIcons serves icons from /static/icons.
func DefaultIcons(name string) string {
	return "/static/icons/" + name + ".png"
}

// Context carries the request-scoped collaborators used while rendering.
// Recent and Trash are only required by the items which need them.
type Context struct {
	Ctx    context.Context
	User   User
	Recent RecentProvider
	Trash  TrashCounter
	Icons  IconResolver
}

func (c *Context) context() context.Context {
	if c == nil || c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) user() User {
	if c == nil {
		return nil
	}
	return c.User
}

func (c *Context) iconURL(name string) string {
	if c == nil || c.Icons == nil {
		return DefaultIcons(name)
	}
	return c.Icons(name)
}

// StaticRecent is a RecentProvider over an already loaded list.
type StaticRecent []RecentEntity

func (s StaticRecent) RecentEntities(context.Context) ([]RecentEntity, error) {
	return s, nil
}

// StaticTrash is a TrashCounter returning a fixed count.
type StaticTrash int

func (n StaticTrash) CountDeleted(context.Context) (int, error) {
	return int(n), nil
}
