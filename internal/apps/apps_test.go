package apps

import (
	"testing"

	"creme-menu/internal/apps/persons"
	"creme-menu/internal/entry"
)

func TestBootstrap(t *testing.T) {
	c, err := Bootstrap()
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, ok := c.Registry.Class(persons.ContactsID); !ok {
		t.Fatalf("expected %s to be registered", persons.ContactsID)
	}
	if _, ok := c.Registry.Class(entry.CremeID); !ok {
		t.Fatalf("expected built-in classes")
	}
	if n := len(c.Forms.Groups()); n != 1 {
		t.Fatalf("expected 1 creation group, got %d", n)
	}
	if n := len(c.Quick.Models()); n != 2 {
		t.Fatalf("expected 2 quick forms, got %d", n)
	}
	if len(c.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(c.Models))
	}
}

func TestBootstrapTwiceIsIndependent(t *testing.T) {
	a, err := Bootstrap()
	if err != nil {
		t.Fatal(err)
	}
	b, err := Bootstrap()
	if err != nil {
		t.Fatal(err)
	}
	if a.Forms == b.Forms || a.Registry == b.Registry {
		t.Fatalf("catalogues must not share registries")
	}
}

func TestDefaultMenuBuilds(t *testing.T) {
	c, err := Bootstrap()
	if err != nil {
		t.Fatal(err)
	}
	var recs []entry.Record
	id := 0
	for i, root := range DefaultMenu() {
		id++
		parent := id
		recs = append(recs, entry.Record{ID: parent, EntryID: root.EntryID, Name: root.Name, Order: i})
		for j, child := range root.Children {
			id++
			recs = append(recs, entry.Record{ID: id, EntryID: child.EntryID, ParentID: &parent, Order: j})
		}
	}
	m, err := c.Registry.Menu(recs)
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	if n := m.Len(); n != len(DefaultMenu()) {
		t.Fatalf("expected %d roots, got %d", len(DefaultMenu()), n)
	}
}
