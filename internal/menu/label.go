package menu

import "fmt"

const (
	textEntryClass = "ui-creme-navigation-text-entry"
	titleClass     = "ui-creme-navigation-title"
)

// LabelItem is a text without link.
type LabelItem struct {
	Viewable
	CSSClass string
}

// NewLabel builds a label item with the default text-entry class.
func NewLabel(id, label string, opts ...Option) (*LabelItem, error) {
	v, err := newViewable(id, collect(append([]Option{WithLabel(label)}, opts...)))
	if err != nil {
		return nil, err
	}
	return &LabelItem{Viewable: v, CSSClass: textEntryClass}, nil
}

func (l *LabelItem) Render(ctx *Context, _ int) (string, error) {
	return fmt.Sprintf(`<span class="%s">%s</span>`, esc(l.CSSClass), l.RenderLabel(ctx)), nil
}

func (l *LabelItem) String() string { return l.describe("LabelItem") }

// GroupLabelItem is the title of a labelled group; only Group builds it.
type GroupLabelItem struct {
	LabelItem
}

// NewGroupLabel builds the title item of a group.
func NewGroupLabel(id, label string) *GroupLabelItem {
	return &GroupLabelItem{LabelItem{
		Viewable: Viewable{Base: Base{id: id}, Label: label, IconLabel: label},
		CSSClass: titleClass,
	}}
}

func (g *GroupLabelItem) String() string { return "" }
