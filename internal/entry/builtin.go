package entry

import (
	"creme-menu/internal/menu"
)

// Ids of the built-in classes.
const (
	ContainerID      = "creme_core-container"
	CremeID          = "creme_core-creme"
	HomeID           = "creme_core-home"
	JobsID           = "creme_core-jobs"
	LogoutID         = "creme_core-logout"
	TrashID          = "creme_core-trash"
	RecentEntitiesID = "creme_core-recent_entities"
	Separator0ID     = "creme_core-separator0"
	CreationFormsID  = "creme_core-creation_forms"
	QuickFormsID     = "creme_core-quick_forms"
)

// URLEntry builds a level-1 class linking url.
func URLEntry(id, label, url string, perm menu.Permission) *Class {
	return &Class{
		ID: id, Label: label, Level: 1,
		Build: func(e *Entry, _ []menu.Item) (menu.Item, error) {
			return menu.NewURLItem(e.ItemID(), url, menu.WithLabel(e.Label()), menu.WithPerm(perm))
		},
	}
}

// ListViewEntry builds a level-1 class linking the list view of m.
func ListViewEntry(id string, m *menu.Model) *Class {
	return &Class{
		ID: id, Label: m.VerboseNamePlural, Level: 1,
		Build: func(e *Entry, _ []menu.Item) (menu.Item, error) {
			return menu.ListView(e.ItemID(), m, menu.WithLabel(e.Label()))
		},
	}
}

// CreationViewEntry builds a level-1 class linking the creation view of m.
func CreationViewEntry(id string, m *menu.Model) *Class {
	return &Class{
		ID: id, Label: "Create " + m.VerboseName, Level: 1,
		Build: func(e *Entry, _ []menu.Item) (menu.Item, error) {
			return menu.CreationView(e.ItemID(), m, menu.WithLabel(e.Label()))
		},
	}
}

func buildContainer(e *Entry, children []menu.Item) (menu.Item, error) {
	c, err := menu.NewContainer(e.ItemID(), menu.WithLabel(e.Label()))
	if err != nil {
		return nil, err
	}
	if err := c.Add(children...); err != nil {
		return nil, err
	}
	return c, nil
}

// Builtin returns the core classes. The creation forms and quick forms
// registries are shared by the items built for every request.
func Builtin(forms *menu.CreationForms, quick *menu.QuickForms) []*Class {
	home := URLEntry(HomeID, "Home", "/", nil)
	trash := &Class{
		ID: TrashID, Label: "Trash", Level: 1,
		Build: func(e *Entry, _ []menu.Item) (menu.Item, error) {
			return menu.NewTrash(e.ItemID(), menu.WithLabel(e.Label()))
		},
	}
	logout := URLEntry(LogoutID, "Log out", "/logout", nil)

	return []*Class{
		{ID: ContainerID, Label: "Container", Level: 0, Multiple: true, Build: buildContainer},
		{
			ID: CremeID, Label: "Creme", Level: 0, Required: true,
			Children: []*Class{home, trash, logout},
			Build:    buildContainer,
		},
		home,
		URLEntry(JobsID, "Jobs", "/creme_core/jobs", menu.Superuser),
		logout,
		trash,
		{
			ID: RecentEntitiesID, Label: "Recent entities", Level: 0,
			Build: func(e *Entry, _ []menu.Item) (menu.Item, error) {
				return menu.NewRecent(e.ItemID(), menu.WithLabel(e.Label()))
			},
		},
		{
			ID: Separator0ID, Label: "Separator", Level: 0, Multiple: true,
			Build: func(e *Entry, _ []menu.Item) (menu.Item, error) {
				return menu.NewSeparator(e.ItemID())
			},
		},
		{
			ID: CreationFormsID, Label: "+ Creation", Level: 0,
			Build: func(e *Entry, _ []menu.Item) (menu.Item, error) {
				return menu.NewCreationFormsItem(e.ItemID(), forms, menu.WithLabel(e.Label()))
			},
		},
		{
			ID: QuickFormsID, Label: "Quick creation", Level: 1,
			Build: func(e *Entry, _ []menu.Item) (menu.Item, error) {
				return menu.NewQuickCreationGroup(e.ItemID(), quick, menu.WithLabel(e.Label()))
			},
		},
	}
}
