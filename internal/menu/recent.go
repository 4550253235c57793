package menu

import (
	"fmt"
	"strings"
)

// RecentItem lists the entities the user visited lately.
type RecentItem struct {
	Viewable
}

// NewRecent builds the recent entities item.
func NewRecent(id string, opts ...Option) (*RecentItem, error) {
	v, err := newViewable(id, collect(opts))
	if err != nil {
		return nil, err
	}
	return &RecentItem{Viewable: v}, nil
}

func (r *RecentItem) Render(ctx *Context, _ int) (string, error) {
	if ctx == nil || ctx.Recent == nil {
		return "", fmt.Errorf("%w: recent entities for %q", ErrMissingContext, r.id)
	}
	entities, err := ctx.Recent.RecentEntities(ctx.context())
	if err != nil {
		return "", fmt.Errorf("recent entities: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(r.RenderIcon(ctx))
	sb.WriteString(r.RenderLabel(ctx))
	sb.WriteString("<ul>")
	if len(entities) == 0 {
		sb.WriteString(`<li><span class="` + textEntryClass + `">No recently visited entity</span></li>`)
	}
	for _, e := range entities {
		fmt.Fprintf(&sb, `<li><a href="%s">%s</a></li>`, esc(e.URL), esc(e.Name))
	}
	sb.WriteString("</ul>")
	return sb.String(), nil
}

func (r *RecentItem) String() string { return r.describe("RecentItem") }
