package entry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creme-menu/internal/menu"
)

type superuser struct{}

func (superuser) HasPerm(string) bool { return true }
func (superuser) IsSuperuser() bool   { return true }

func intPtr(i int) *int { return &i }

func testRegistry() *Registry {
	return NewRegistry(Builtin(&menu.CreationForms{}, &menu.QuickForms{})...)
}

func TestRegisterPanicsOnInvalidClass(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() { r.Register(&Class{ID: "", Build: buildContainer}) })
	assert.Panics(t, func() { r.Register(&Class{ID: `a"b`, Build: buildContainer}) })
	assert.Panics(t, func() { r.Register(&Class{ID: "x"}) })
	assert.Panics(t, func() { r.Register(&Class{ID: "x", Level: 2, Build: buildContainer}) })
}

func TestLastRegisteredClassWins(t *testing.T) {
	r := testRegistry()
	custom := URLEntry(HomeID, "My home", "/home", nil)
	r.Register(custom)

	cls, ok := r.Class(HomeID)
	require.True(t, ok)
	assert.Same(t, custom, cls)

	count := 0
	for _, c := range r.Classes() {
		if c.ID == HomeID {
			count++
			assert.Same(t, custom, c)
		}
	}
	assert.Equal(t, 1, count)

	r.Unregister(HomeID)
	_, ok = r.Class(HomeID)
	assert.False(t, ok)
}

func TestEntriesResolution(t *testing.T) {
	r := testRegistry()
	records := []Record{
		{ID: 1, EntryID: CremeID, Order: 0},
		{ID: 2, EntryID: ContainerID, Order: 2, Name: "Tools"},
		{ID: 3, EntryID: JobsID, ParentID: intPtr(2), Order: 1},
		{ID: 4, EntryID: "unknown", ParentID: intPtr(2), Order: 0},
		{ID: 5, EntryID: HomeID, Order: 1},
		{ID: 6, EntryID: RecentEntitiesID, ParentID: intPtr(2), Order: 2},
		{ID: 7, EntryID: HomeID, ParentID: intPtr(1), Order: 0},
		{ID: 8, EntryID: Separator0ID, Order: 1},
	}

	entries := r.Entries(records)
	require.Len(t, entries, 3)

	assert.Equal(t, CremeID, entries[0].Class.ID)
	assert.Equal(t, "Creme", entries[0].Label())
	var fixed []string
	for _, c := range entries[0].Children {
		fixed = append(fixed, c.Class.ID)
	}
	assert.Equal(t, []string{HomeID, TrashID, LogoutID}, fixed)

	assert.Equal(t, Separator0ID, entries[1].Class.ID)

	tools := entries[2]
	assert.Equal(t, "Tools", tools.Label())
	assert.Equal(t, ContainerID+"-2", tools.ItemID())
	require.Len(t, tools.Children, 1)
	assert.Equal(t, JobsID, tools.Children[0].Class.ID)
}

func TestMenuFromRecords(t *testing.T) {
	r := testRegistry()
	records := []Record{
		{ID: 1, EntryID: CremeID, Order: 0},
		{ID: 2, EntryID: ContainerID, Order: 1, Name: "Tools"},
		{ID: 3, EntryID: JobsID, ParentID: intPtr(2), Order: 0},
		{ID: 4, EntryID: QuickFormsID, ParentID: intPtr(2), Order: 1},
	}
	m, err := r.Menu(records)
	require.NoError(t, err)

	it, err := m.Get(CremeID, TrashID)
	require.NoError(t, err)
	assert.IsType(t, &menu.TrashItem{}, it)

	ctx := &menu.Context{User: superuser{}, Trash: menu.StaticTrash(2)}
	html, err := m.Render(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, `<a href="/creme_core/jobs">Jobs</a>`)
	assert.Contains(t, html, "ui-creme-navigation-item-id_creme_core-container-2")
	assert.Contains(t, html, `<span class="ui-creme-navigation-title">Quick creation</span>`)
	assert.Contains(t, html, "creme_core-quick_forms-empty")
	assert.True(t, strings.HasPrefix(html, `<ul class="ui-creme-navigation">`))
}

func TestMenuDuplicateSingleEntry(t *testing.T) {
	r := testRegistry()
	_, err := r.Menu([]Record{
		{ID: 1, EntryID: RecentEntitiesID},
		{ID: 2, EntryID: RecentEntitiesID},
	})
	require.ErrorIs(t, err, menu.ErrDuplicateID)
}

func TestSortRecords(t *testing.T) {
	records := []Record{{ID: 3, Order: 1}, {ID: 2, Order: 1}, {ID: 1, Order: 2}}
	SortRecords(records)
	assert.Equal(t, []int{2, 3, 1}, []int{records[0].ID, records[1].ID, records[2].ID})
}
