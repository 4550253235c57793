package entry

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"creme-menu/internal/logx"
	"creme-menu/internal/menu"
)

var entryLogger = logx.GetScope("entry")

// Registry is the ordered set of the available entry classes.
// It is filled at startup and only read afterwards.
type Registry struct {
	classes []*Class
}

// NewRegistry returns a registry holding classes.
func NewRegistry(classes ...*Class) *Registry {
	return new(Registry).Register(classes...)
}

// Register adds classes. Registering an id again overrides the previous
// class. It panics on invalid classes.
func (r *Registry) Register(classes ...*Class) *Registry {
	for _, c := range classes {
		if c == nil {
			panic("entry: nil class")
		}
		if c.ID == "" {
			panic("entry: class without id")
		}
		if err := menu.ValidateID(c.ID); err != nil {
			panic(fmt.Sprintf("entry: %v", err))
		}
		if c.Build == nil {
			panic(fmt.Sprintf("entry: class %s has no builder", c.ID))
		}
		if c.Level != 0 && c.Level != 1 {
			panic(fmt.Sprintf("entry: class %s has invalid level %d", c.ID, c.Level))
		}
		r.classes = append(r.classes, c)
	}
	return r
}

// Unregister removes the classes with the given ids. Apps call it at
// startup to drop or replace a class contributed by another app.
func (r *Registry) Unregister(ids ...string) {
	r.classes = slices.DeleteFunc(r.classes, func(c *Class) bool {
		return slices.Contains(ids, c.ID)
	})
}

// Classes returns the registered classes, overridden ones excluded.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, 0, len(r.classes))
	seen := make(map[string]struct{}, len(r.classes))
	for i := len(r.classes) - 1; i >= 0; i-- {
		c := r.classes[i]
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	slices.Reverse(out)
	return out
}

// Class returns the class id; the last registered one wins.
func (r *Registry) Class(id string) (*Class, bool) {
	for i := len(r.classes) - 1; i >= 0; i-- {
		if r.classes[i].ID == id {
			return r.classes[i], true
		}
	}
	return nil, false
}

// ClassesOfLevel returns the classes of the given level.
func (r *Registry) ClassesOfLevel(level int) []*Class {
	return slices.DeleteFunc(r.Classes(), func(c *Class) bool { return c.Level != level })
}

// SortRecords orders records by order, then id.
func SortRecords(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
	})
}

// Entries resolves records into entries. Top-level records only resolve to
// level-0 classes and child records to level-1 classes; records referencing
// unknown classes are skipped.
func (r *Registry) Entries(records []Record) []*Entry {
	sorted := slices.Clone(records)
	SortRecords(sorted)

	byParent := make(map[int][]Record)
	for _, rec := range sorted {
		if !rec.IsRoot() {
			byParent[*rec.ParentID] = append(byParent[*rec.ParentID], rec)
		}
	}

	var entries []*Entry
	for _, rec := range sorted {
		if !rec.IsRoot() {
			continue
		}
		cls, ok := r.resolve(rec, 0)
		if !ok {
			continue
		}
		e := &Entry{Class: cls, Record: rec}
		if len(cls.Children) > 0 {
			e.Children = fixedChildren(cls)
		} else {
			for _, child := range byParent[rec.ID] {
				if ccls, ok := r.resolve(child, 1); ok {
					e.Children = append(e.Children, &Entry{Class: ccls, Record: child})
				}
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func (r *Registry) resolve(rec Record, level int) (*Class, bool) {
	cls, ok := r.Class(rec.EntryID)
	if !ok {
		entryLogger.Warn("unknown entry class", zap.String("entry_id", rec.EntryID), zap.Int("record", rec.ID))
		return nil, false
	}
	if cls.Level != level {
		entryLogger.Warn("entry class used at the wrong level",
			zap.String("entry_id", rec.EntryID), zap.Int("record", rec.ID), zap.Int("level", level))
		return nil, false
	}
	return cls, true
}

func fixedChildren(cls *Class) []*Entry {
	children := make([]*Entry, len(cls.Children))
	for i, c := range cls.Children {
		children[i] = &Entry{Class: c, Record: Record{EntryID: c.ID, Order: i}}
	}
	return children
}

// Menu builds a fresh menu from records.
func (r *Registry) Menu(records []Record) (*menu.Menu, error) {
	m := menu.New()
	for _, e := range r.Entries(records) {
		it, err := e.Item()
		if err != nil {
			return nil, err
		}
		if err := m.Add(it); err != nil {
			return nil, fmt.Errorf("record %d: %w", e.Record.ID, err)
		}
	}
	return m, nil
}
