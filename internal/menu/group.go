package menu

import (
	"fmt"
	"strings"
)

// Group holds items which are displayed at the level of the group itself.
// A group is never rendered; its parent flattens it (see Flatten).
type Group struct {
	Base
	ItemList
	Label string
}

// NewGroup builds an empty group; a non-empty label is displayed as a title
// before the children.
func NewGroup(id, label string) (*Group, error) {
	b, err := NewBase(id)
	if err != nil {
		return nil, err
	}
	return &Group{Base: b, Label: label}, nil
}

func (g *Group) Kind() Kind { return KindGroup }

// Insert rejects groups, which cannot be nested.
func (g *Group) Insert(pos Position, items ...Item) error {
	for _, it := range items {
		if it.Kind() == KindGroup {
			return fmt.Errorf(`%w: "%s" in "%s"`, ErrNestedGroup, it.ID(), g.id)
		}
	}
	return g.ItemList.Insert(pos, items...)
}

func (g *Group) Add(items ...Item) error { return g.Insert(End, items...) }

func (g *Group) AddAt(priority int, items ...Item) error {
	return g.Insert(At(priority), items...)
}

// Expand returns the title item (if any) followed by the children.
func (g *Group) Expand() []Item {
	items := g.Items()
	if g.Label == "" {
		return items
	}
	return append([]Item{NewGroupLabel(g.id, g.Label)}, items...)
}

func (g *Group) Render(*Context, int) (string, error) {
	return "", fmt.Errorf(`%w: "%s"`, ErrGroupRender, g.id)
}

func (g *Group) String() string {
	return fmt.Sprintf(`Group(id="%s", priority=%s)`, g.id, g.priorityString())
}

// dumpList writes items one per line; groups are expanded between markers.
func dumpList(sb *strings.Builder, items []Item, indent, groupOpen, groupIndent, groupClose string) {
	for _, it := range items {
		g, ok := it.(Grouper)
		if !ok {
			sb.WriteString(indent + it.String() + "\n")
			continue
		}
		sb.WriteString(groupOpen + g.String() + "\n")
		for _, sub := range g.Expand() {
			sb.WriteString(groupIndent + sub.String() + "\n")
		}
		sb.WriteString(groupClose + "\n")
	}
}
