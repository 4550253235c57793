package menu

import "strings"

// Menu is the root list of the navigation.
type Menu struct {
	ItemList
}

// New returns an empty menu.
func New() *Menu { return &Menu{} }

// Entries returns the top-level items with the groups flattened.
func (m *Menu) Entries() []Item { return flattenEnclosed(m.Items()) }

// Render returns the whole menu as a <ul class="ui-creme-navigation">.
// Every top-level entry, separators included, is wrapped in a <li>.
func (m *Menu) Render(ctx *Context) (string, error) {
	var sb strings.Builder
	sb.WriteString(`<ul class="ui-creme-navigation">`)
	if err := writeEntries(&sb, ctx, m.Entries(), 0, false); err != nil {
		return "", err
	}
	sb.WriteString("</ul>")
	return sb.String(), nil
}

func (m *Menu) String() string {
	var sb strings.Builder
	dumpList(&sb, m.Items(), "", "---\n", "   ", "---")
	return sb.String()
}
