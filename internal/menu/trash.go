package menu

import (
	"fmt"
	"strconv"
)

// TrashURL is the default target of the trash item.
const TrashURL = "/creme_core/trash"

// TrashItem links the trash and displays the number of deleted entities.
type TrashItem struct {
	URLItem
}

// NewTrash builds a trash link; the label defaults to "Trash".
func NewTrash(id string, opts ...Option) (*TrashItem, error) {
	u, err := NewURLItem(id, TrashURL, append([]Option{WithLabel("Trash")}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &TrashItem{URLItem: *u}, nil
}

func (t *TrashItem) Render(ctx *Context, _ int) (string, error) {
	if ctx == nil || ctx.Trash == nil {
		return "", fmt.Errorf("%w: trash counter for %q", ErrMissingContext, t.id)
	}
	n, err := ctx.Trash.CountDeleted(ctx.context())
	if err != nil {
		return "", fmt.Errorf("count deleted entities: %w", err)
	}
	return fmt.Sprintf(`<a href="%s">%s <span class="ui-creme-navigation-punctuation">(</span>%s<span class="ui-creme-navigation-punctuation">)</span></a>`,
		esc(t.URL()), t.RenderLabel(ctx), entityCount(n)), nil
}

func (t *TrashItem) String() string { return t.describe("TrashItem") }

func entityCount(n int) string {
	if n == 1 {
		return "1 entity"
	}
	return strconv.Itoa(n) + " entities"
}
