// Package entry maps the persisted menu configuration to menu items.
//
// Apps register entry classes in a Registry at startup. Each configuration
// record references a class by id; the registry resolves the records into
// entries and builds a fresh menu.Menu from them.
package entry

import (
	"fmt"
	"strconv"

	"creme-menu/internal/menu"
)

// Record is a row of the menu configuration.
type Record struct {
	ID       int    `json:"id"`
	EntryID  string `json:"entry_id"`
	ParentID *int   `json:"parent_id,omitempty"`
	Order    int    `json:"order"`
	Name     string `json:"name"`
}

// IsRoot tells if the record is a top-level one.
func (r Record) IsRoot() bool { return r.ParentID == nil }

// BuildFunc builds the live item of an entry; children are the items of the
// child entries, in order.
type BuildFunc func(e *Entry, children []menu.Item) (menu.Item, error)

// Class describes a kind of entry.
type Class struct {
	ID    string
	Label string
	// Level is 0 for top-level entries and 1 for entries inside a container.
	Level int
	// Required entries cannot be removed from the menu.
	Required bool
	// Multiple classes can be used by several records; their items get the
	// record id as suffix.
	Multiple bool
	// Children are fixed child classes; child records are ignored when set.
	Children []*Class
	Build    BuildFunc
}

func (c *Class) String() string { return c.ID }

// Entry is a class instantiated by a record.
type Entry struct {
	Class    *Class
	Record   Record
	Children []*Entry
}

// Label is the record name, or the class label when the name is empty.
func (e *Entry) Label() string {
	if e.Record.Name != "" {
		return e.Record.Name
	}
	return e.Class.Label
}

// ItemID is the id of the built item.
func (e *Entry) ItemID() string {
	if e.Class.Multiple && e.Record.ID != 0 {
		return e.Class.ID + "-" + strconv.Itoa(e.Record.ID)
	}
	return e.Class.ID
}

// Item builds the menu item of the entry and of its children.
func (e *Entry) Item() (menu.Item, error) {
	children := make([]menu.Item, 0, len(e.Children))
	for _, child := range e.Children {
		it, err := child.Item()
		if err != nil {
			return nil, err
		}
		children = append(children, it)
	}
	it, err := e.Class.Build(e, children)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", e.Class.ID, err)
	}
	return it, nil
}
