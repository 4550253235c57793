package menu

import "strconv"

// Model describes an entity type apps contribute links for.
type Model struct {
	AppLabel          string
	Name              string
	VerboseName       string
	VerboseNamePlural string
	ContentTypeID     int
	ListURL           string
	CreateURL         string
}

// CreationPerm is the permission needed to create an entity, e.g.
// "persons.add_contact".
func (m *Model) CreationPerm() string { return m.AppLabel + ".add_" + m.Name }

// QuickFormURL is the URL of the inner-popup creation form.
func (m *Model) QuickFormURL() string {
	return "/quickforms/" + strconv.Itoa(m.ContentTypeID)
}

// CanCreate tells if u has the creation permission of the model.
func (m *Model) CanCreate(u User) bool {
	return StringPolicy(m.CreationPerm()).Allows(u)
}
