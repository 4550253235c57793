package menu

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Link targets a creation view, inside a LinksGroup.
type Link struct {
	Viewable
	Model *Model
	url   func() string
}

// NewLink builds a link. Without model, WithLabel, WithURL and WithPerm are
// mandatory; with a model they override its values.
func NewLink(id string, model *Model, opts ...Option) (*Link, error) {
	s := collect(opts)
	if model == nil {
		switch {
		case !s.labelSet:
			return nil, fmt.Errorf("%w: link %q has no label", ErrMissingArgument, id)
		case s.url == nil:
			return nil, fmt.Errorf("%w: link %q has no url", ErrMissingArgument, id)
		case !s.permSet:
			return nil, fmt.Errorf("%w: link %q has no perm", ErrMissingArgument, id)
		}
	} else {
		if s.label == "" {
			s.label = model.VerboseName
		}
		if s.url == nil {
			s.url = constURL(model.CreateURL)
		}
		if !s.permSet || s.perm == nil {
			s.perm = StringPolicy(model.CreationPerm())
		}
	}
	v, err := newViewable(id, s)
	if err != nil {
		return nil, err
	}
	return &Link{Viewable: v, Model: model, url: s.url}, nil
}

// URL resolves the target.
func (l *Link) URL() string { return l.url() }

func (l *Link) Render(ctx *Context, _ int) (string, error) {
	if !Allowed(l.Perm, ctx.user()) {
		return forbidden(esc(l.Label)), nil
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, esc(l.URL()), esc(l.Label)), nil
}

func (l *Link) String() string { return l.describe("Link") }

// LinkDict is the JSON form of a link; URL is only set for allowed users.
type LinkDict struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// Dict serialises the link for u.
func (l *Link) Dict(u User) LinkDict {
	d := LinkDict{Label: l.Label}
	if Allowed(l.Perm, u) {
		d.URL = l.URL()
	}
	return d
}

// LinksGroup is a titled block of creation links.
type LinksGroup struct {
	Viewable
	links ItemList
}

// NewLinksGroup builds an empty group.
func NewLinksGroup(id, label string) (*LinksGroup, error) {
	v, err := newViewable(id, settings{label: label, labelSet: true})
	if err != nil {
		return nil, err
	}
	return &LinksGroup{Viewable: v}, nil
}

// AddLink adds a link built by NewLink at pos.
func (g *LinksGroup) AddLink(id string, model *Model, pos Position, opts ...Option) (*LinksGroup, error) {
	l, err := NewLink(id, model, opts...)
	if err != nil {
		return g, err
	}
	if err := g.links.Insert(pos, l); err != nil {
		return g, err
	}
	return g, nil
}

// Links returns the links in order.
func (g *LinksGroup) Links() []*Link {
	items := g.links.Items()
	links := make([]*Link, len(items))
	for i, it := range items {
		links[i] = it.(*Link)
	}
	return links
}

// Link returns a link by id.
func (g *LinksGroup) Link(id string) (*Link, error) {
	it, err := g.links.Get(id)
	if err != nil {
		return nil, err
	}
	return it.(*Link), nil
}

func (g *LinksGroup) ChangePriority(priority int, ids ...string) error {
	return g.links.ChangePriority(priority, ids...)
}

func (g *LinksGroup) Remove(ids ...string) { g.links.Remove(ids...) }

func (g *LinksGroup) String() string {
	return fmt.Sprintf(`<LinkGroup: id="%s" label="%s" priority=%s>`, g.id, g.Label, g.priorityString())
}

// GridCell is one group of the creation grid.
type GridCell struct {
	Label string     `json:"label"`
	Links []LinkDict `json:"links"`
}

// CreationForms is the registry of creation links, grouped by theme.
// It is filled at startup and only read afterwards.
type CreationForms struct {
	groups ItemList
}

// GetOrCreateGroup returns the group id, creating it with label at pos.
func (c *CreationForms) GetOrCreateGroup(id, label string, pos Position) (*LinksGroup, error) {
	return GetOrCreate(&c.groups, id, pos, func(id string) (*LinksGroup, error) {
		return NewLinksGroup(id, label)
	})
}

// Groups returns the groups in order.
func (c *CreationForms) Groups() []*LinksGroup {
	items := c.groups.Items()
	groups := make([]*LinksGroup, len(items))
	for i, it := range items {
		groups[i] = it.(*LinksGroup)
	}
	return groups
}

func (c *CreationForms) ChangePriority(priority int, ids ...string) error {
	return c.groups.ChangePriority(priority, ids...)
}

func (c *CreationForms) Remove(ids ...string) { c.groups.Remove(ids...) }

// AsGrid lays the groups out in an almost square grid. The smallest rows come
// first, each one having at most two holes.
func (c *CreationForms) AsGrid(u User) [][]GridCell {
	groups := c.Groups()
	size := int(math.Ceil(math.Sqrt(float64(len(groups)))))
	holes := size*size - len(groups)

	grid := make([][]GridCell, 0, size)
	next := 0
	for weight := size; weight > 0; weight-- {
		cols := size
		switch {
		case holes == 0:
		case holes-weight > 0:
			holes -= 2
			cols = size - 2
		default:
			holes--
			cols = size - 1
		}

		row := make([]GridCell, 0, cols)
		for range cols {
			g := groups[next]
			next++
			links := g.Links()
			cell := GridCell{Label: g.Label, Links: make([]LinkDict, len(links))}
			for i, l := range links {
				cell.Links[i] = l.Dict(u)
			}
			row = append(row, cell)
		}
		grid = append(grid, row)
	}
	return grid
}

// VerboseString dumps the groups and links with their priorities.
func (c *CreationForms) VerboseString() string {
	var sb strings.Builder
	for _, g := range c.Groups() {
		sb.WriteString("  " + g.String() + "\n")
		for _, l := range g.Links() {
			sb.WriteString("     " + l.String() + "\n")
		}
	}
	return sb.String()
}

// CreationFormsItem opens a dialog with the CreationForms grid.
type CreationFormsItem struct {
	Viewable
	Forms *CreationForms
}

// NewCreationFormsItem builds the item over a shared registry.
func NewCreationFormsItem(id string, forms *CreationForms, opts ...Option) (*CreationFormsItem, error) {
	v, err := newViewable(id, collect(opts))
	if err != nil {
		return nil, err
	}
	return &CreationFormsItem{Viewable: v, Forms: forms}, nil
}

func (c *CreationFormsItem) Render(ctx *Context, _ int) (string, error) {
	grid := [][]GridCell{}
	if c.Forms != nil {
		grid = c.Forms.AsGrid(ctx.user())
	}
	links, err := json.Marshal(grid)
	if err != nil {
		return "", fmt.Errorf("encode creation grid: %w", err)
	}
	return fmt.Sprintf(`<a href="" class="anyform-menu-link" title="Create an entity of any type" data-grouped-links="%s">%s%s</a>`,
		esc(string(links)), c.RenderIcon(ctx), c.RenderLabel(ctx)), nil
}

func (c *CreationFormsItem) String() string { return c.describe("CreationFormsItem") }

// VerboseString is String followed by the dump of the registry.
func (c *CreationFormsItem) VerboseString() string {
	s := c.String() + "\n"
	if c.Forms != nil {
		s += c.Forms.VerboseString()
	}
	return s
}
