// Package persons is the directory app: contacts and organisations.
package persons

import (
	"creme-menu/internal/entry"
	"creme-menu/internal/menu"
)

var (
	Contact = &menu.Model{
		AppLabel: "persons", Name: "contact",
		VerboseName: "Contact", VerboseNamePlural: "Contacts",
		ContentTypeID: 12,
		ListURL:       "/persons/contacts", CreateURL: "/persons/contact/add",
	}
	Organisation = &menu.Model{
		AppLabel: "persons", Name: "organisation",
		VerboseName: "Organisation", VerboseNamePlural: "Organisations",
		ContentTypeID: 13,
		ListURL:       "/persons/organisations", CreateURL: "/persons/organisation/add",
	}
)

const (
	ContactsID            = "persons-contacts"
	OrganisationsID       = "persons-organisations"
	CreateContactID       = "persons-create_contact"
	CreateOrganisationID  = "persons-create_organisation"
	CreationFormsGroupID  = "persons-directory"
	creationGroupPriority = 10
)

type App struct{}

func (App) Label() string { return "persons" }

func (App) Models() []*menu.Model { return []*menu.Model{Contact, Organisation} }

func (App) RegisterMenuEntries(r *entry.Registry) {
	r.Register(
		entry.ListViewEntry(ContactsID, Contact),
		entry.ListViewEntry(OrganisationsID, Organisation),
		entry.CreationViewEntry(CreateContactID, Contact),
		entry.CreationViewEntry(CreateOrganisationID, Organisation),
	)
}

func (App) RegisterCreationForms(f *menu.CreationForms) error {
	g, err := f.GetOrCreateGroup(CreationFormsGroupID, "Directory", menu.At(creationGroupPriority))
	if err != nil {
		return err
	}
	if _, err := g.AddLink("create_contact", Contact, menu.End); err != nil {
		return err
	}
	_, err = g.AddLink("create_organisation", Organisation, menu.End)
	return err
}

func (App) RegisterQuickForms(q *menu.QuickForms) {
	q.Register(Contact, Organisation)
}
