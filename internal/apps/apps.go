// Package apps assembles the menu catalogue from the installed apps.
package apps

import (
	"fmt"

	"go.uber.org/zap"

	"creme-menu/internal/apps/persons"
	"creme-menu/internal/entry"
	"creme-menu/internal/logx"
	"creme-menu/internal/menu"
	"creme-menu/internal/menuconfig"
)

var appsLogger = logx.GetScope("apps")

// App contributes entry classes, creation links and quick forms.
type App interface {
	Label() string
	Models() []*menu.Model
	RegisterMenuEntries(r *entry.Registry)
	RegisterCreationForms(f *menu.CreationForms) error
	RegisterQuickForms(q *menu.QuickForms)
}

// Catalog is everything menus are built from. It is read-only once built.
type Catalog struct {
	Registry *entry.Registry
	Forms    *menu.CreationForms
	Quick    *menu.QuickForms
	Models   []*menu.Model
}

// Installed returns the default apps.
func Installed() []App {
	return []App{persons.App{}}
}

// Bootstrap builds the catalogue from the core classes and the given apps
// (Installed when none).
func Bootstrap(apps ...App) (*Catalog, error) {
	if len(apps) == 0 {
		apps = Installed()
	}

	c := &Catalog{Forms: &menu.CreationForms{}, Quick: &menu.QuickForms{}}
	c.Registry = entry.NewRegistry(entry.Builtin(c.Forms, c.Quick)...)

	for _, app := range apps {
		app.RegisterMenuEntries(c.Registry)
		if err := app.RegisterCreationForms(c.Forms); err != nil {
			return nil, fmt.Errorf("app %s: %w", app.Label(), err)
		}
		app.RegisterQuickForms(c.Quick)
		c.Models = append(c.Models, app.Models()...)
		appsLogger.Debug("app registered", zap.String("app", app.Label()))
	}
	appsLogger.Info("menu catalogue ready",
		zap.Int("classes", len(c.Registry.Classes())),
		zap.Int("creation_groups", len(c.Forms.Groups())),
		zap.Int("quick_forms", len(c.Quick.Models())))
	return c, nil
}

// DefaultMenu is the configuration stored on first start.
func DefaultMenu() []menuconfig.Node {
	return []menuconfig.Node{
		menuconfig.Root(entry.CremeID, ""),
		menuconfig.Root(entry.ContainerID, "Directory",
			persons.ContactsID, persons.OrganisationsID,
			persons.CreateContactID, persons.CreateOrganisationID,
			entry.QuickFormsID,
		),
		menuconfig.Root(entry.Separator0ID, ""),
		menuconfig.Root(entry.CreationFormsID, ""),
		menuconfig.Root(entry.RecentEntitiesID, ""),
	}
}
