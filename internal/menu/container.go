package menu

import (
	"fmt"
	"strings"
)

// Container is an item with children rendered one level deeper.
type Container struct {
	Viewable
	ItemList
}

// NewContainer builds an empty container.
func NewContainer(id string, opts ...Option) (*Container, error) {
	v, err := newViewable(id, collect(opts))
	if err != nil {
		return nil, err
	}
	return &Container{Viewable: v}, nil
}

func (c *Container) Kind() Kind { return KindContainer }

// Children returns the flattened children, with separators.
func (c *Container) Children() []Item { return Flatten(c.Items()) }

func (c *Container) Render(ctx *Context, level int) (string, error) {
	level++

	var sb strings.Builder
	sb.WriteString(c.RenderIcon(ctx))
	sb.WriteString(c.RenderLabel(ctx))
	sb.WriteString("<ul>")
	if err := writeEntries(&sb, ctx, c.Children(), level, true); err != nil {
		return "", fmt.Errorf("container %q: %w", c.id, err)
	}
	sb.WriteString("</ul>")
	return sb.String(), nil
}

func (c *Container) String() string {
	var sb strings.Builder
	sb.WriteString(c.describe("Container") + "\n")
	dumpList(&sb, c.Items(), "      ", "      --", "        ", "      --")
	return strings.TrimSuffix(sb.String(), "\n")
}

// writeEntries renders each item into a <li>. Separators are written bare
// when bareSeparators is set.
func writeEntries(sb *strings.Builder, ctx *Context, items []Item, level int, bareSeparators bool) error {
	for _, it := range items {
		html, err := it.Render(ctx, level)
		if err != nil {
			return err
		}
		if bareSeparators && it.Kind() == KindSeparator {
			sb.WriteString(html)
			continue
		}
		fmt.Fprintf(sb, `<li class="ui-creme-navigation-item-level%d ui-creme-navigation-item-id_%s">%s</li>`,
			level, esc(it.ID()), html)
	}
	return nil
}
