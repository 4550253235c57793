package menu

import (
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// QuickForms lists the models having a quick (inner-popup) creation form.
type QuickForms struct {
	models []*Model
}

// Register adds models; registering a content type twice is a no-op.
func (q *QuickForms) Register(models ...*Model) *QuickForms {
	for _, m := range models {
		if !slices.ContainsFunc(q.models, func(o *Model) bool { return o.ContentTypeID == m.ContentTypeID }) {
			q.models = append(q.models, m)
		}
	}
	return q
}

// Unregister removes the models with the given content type ids. Apps call
// it at startup to hide a model another app registered.
func (q *QuickForms) Unregister(ctypeIDs ...int) {
	q.models = slices.DeleteFunc(q.models, func(m *Model) bool {
		return slices.Contains(ctypeIDs, m.ContentTypeID)
	})
}

// Models returns the registered models.
func (q *QuickForms) Models() []*Model { return slices.Clone(q.models) }

// QuickCreationGroup is a group whose children are computed from a
// QuickForms registry each time it is flattened.
type QuickCreationGroup struct {
	Base
	Label string
	Forms *QuickForms
}

// NewQuickCreationGroup builds the group; the label defaults to "Quick creation".
func NewQuickCreationGroup(id string, forms *QuickForms, opts ...Option) (*QuickCreationGroup, error) {
	b, err := NewBase(id)
	if err != nil {
		return nil, err
	}
	s := collect(opts)
	label := "Quick creation"
	if s.labelSet {
		label = s.label
	}
	return &QuickCreationGroup{Base: b, Label: label, Forms: forms}, nil
}

func (q *QuickCreationGroup) Kind() Kind { return KindGroup }

func (q *QuickCreationGroup) Render(*Context, int) (string, error) {
	return "", fmt.Errorf(`%w: "%s"`, ErrGroupRender, q.id)
}

func (q *QuickCreationGroup) String() string {
	return fmt.Sprintf(`QuickCreationGroup(id="%s", priority=%s)`, q.id, q.priorityString())
}

// Expand returns one link per model, sorted by verbose name.
func (q *QuickCreationGroup) Expand() []Item {
	var items []Item
	if q.Label != "" {
		items = append(items, NewGroupLabel(q.id, q.Label))
	}

	var models []*Model
	if q.Forms != nil {
		models = q.Forms.Models()
	}
	if len(models) == 0 {
		items = append(items, &LabelItem{
			Viewable: Viewable{Base: Base{id: q.id + "-empty"}, Label: "No type available"},
			CSSClass: textEntryClass,
		})
		return items
	}

	col := collate.New(language.Und, collate.IgnoreCase)
	slices.SortStableFunc(models, func(a, b *Model) int {
		return col.CompareString(a.VerboseName, b.VerboseName)
	})
	for _, m := range models {
		items = append(items, &quickCreationItem{
			Viewable: Viewable{
				Base:  Base{id: q.id + "-" + strconv.Itoa(m.ContentTypeID)},
				Label: m.VerboseName,
			},
			model: m,
		})
	}
	return items
}

type quickCreationItem struct {
	Viewable
	model *Model
}

func (i *quickCreationItem) Render(ctx *Context, _ int) (string, error) {
	if !i.model.CanCreate(ctx.user()) {
		return forbidden(esc(i.Label)), nil
	}
	return fmt.Sprintf(`<a href="#" data-href="%s" class="quickform-menu-link">%s</a>`,
		esc(i.model.QuickFormURL()), esc(i.Label)), nil
}

func (i *quickCreationItem) String() string { return i.describe("QuickCreationItem") }
