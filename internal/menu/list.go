package menu

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"creme-menu/internal/logx"
)

var menuLogger = logx.GetScope("menu")

// Position tells Insert where to place items: at the end (End) or after the
// items having a priority lower or equal to a given one (At).
type Position struct {
	priority int
	set      bool
}

// End appends items with the priority of the current last item (or 1).
var End = Position{}

// At places items after the last item whose priority is <= priority.
func At(priority int) Position {
	return Position{priority: priority, set: true}
}

// Priority returns the explicit priority, if any.
func (p Position) Priority() (int, bool) { return p.priority, p.set }

// ItemList is an ordered collection of items with unique ids.
// Items are ordered by ascending priority; items inserted by the same call
// keep their relative order.
type ItemList struct {
	items []Item
	ids   map[string]struct{}
}

// Len returns the number of items.
func (l *ItemList) Len() int { return len(l.items) }

// Items returns the items in order.
func (l *ItemList) Items() []Item { return slices.Clone(l.items) }

// Add appends items at the end.
func (l *ItemList) Add(items ...Item) error { return l.Insert(End, items...) }

// AddAt inserts items with the given priority.
func (l *ItemList) AddAt(priority int, items ...Item) error {
	return l.Insert(At(priority), items...)
}

// Insert adds items at pos. Nothing is inserted if an item already belongs
// to a list or if an id is already used.
func (l *ItemList) Insert(pos Position, items ...Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.base().owned {
			return fmt.Errorf("%w: %s", ErrAlreadyOwned, it)
		}
		id := it.ID()
		if l.has(id) {
			return fmt.Errorf(`%w: "%s"`, ErrDuplicateID, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf(`%w: "%s"`, ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}

	priority, explicit := pos.Priority()
	if !explicit {
		priority = 1
		if n := len(l.items); n > 0 {
			priority = l.items[n-1].base().priority
		}
		l.items = append(l.items, items...)
	} else {
		idx := 0
		for i := len(l.items) - 1; i >= 0; i-- {
			if l.items[i].base().priority <= priority {
				idx = i + 1
				break
			}
		}
		l.items = slices.Insert(l.items, idx, items...)
	}

	if l.ids == nil {
		l.ids = make(map[string]struct{}, len(items))
	}
	for _, it := range items {
		b := it.base()
		b.priority, b.owned = priority, true
		l.ids[b.id] = struct{}{}
	}
	return nil
}

// ChangePriority moves the items to a new priority, keeping the order of ids.
// The list is left untouched if an id is unknown.
func (l *ItemList) ChangePriority(priority int, ids ...string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !l.has(id) {
			return fmt.Errorf(`%w: "%s"`, ErrNotFound, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf(`%w: "%s"`, ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}

	popped := make([]Item, 0, len(ids))
	for _, id := range ids {
		it, err := l.Pop(id)
		if err != nil {
			return err
		}
		popped = append(popped, it)
	}
	return l.Insert(At(priority), popped...)
}

// Clear detaches all the items, which can then be added elsewhere.
func (l *ItemList) Clear() {
	for _, it := range l.items {
		b := it.base()
		b.priority, b.owned = 0, false
	}
	l.items = nil
	l.ids = nil
}

// Get returns the item at the end of a path of ids, going through nested
// containers (and groups).
func (l *ItemList) Get(path ...string) (Item, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	head, rest := path[0], path[1:]
	for _, it := range l.items {
		if it.ID() != head {
			continue
		}
		if len(rest) == 0 {
			return it, nil
		}
		sub, ok := it.(interface {
			Get(path ...string) (Item, error)
		})
		if !ok {
			return nil, fmt.Errorf(`%w: "%s"`, ErrNotContainer, head)
		}
		return sub.Get(rest...)
	}
	return nil, fmt.Errorf(`%w: "%s"`, ErrNotFound, head)
}

// Pop removes an item and returns it detached.
func (l *ItemList) Pop(id string) (Item, error) {
	for i, it := range l.items {
		if it.ID() != id {
			continue
		}
		l.items = slices.Delete(l.items, i, i+1)
		delete(l.ids, id)
		b := it.base()
		b.priority, b.owned = 0, false
		return it, nil
	}
	return nil, fmt.Errorf(`%w: "%s"`, ErrNotFound, id)
}

// Remove pops several items; unknown ids are logged and skipped.
func (l *ItemList) Remove(ids ...string) {
	for _, id := range ids {
		if _, err := l.Pop(id); err != nil {
			menuLogger.Warn("remove: unknown item", zap.String("id", id), zap.Error(err))
		}
	}
}

func (l *ItemList) has(id string) bool {
	_, ok := l.ids[id]
	return ok
}

// Inserter is implemented by every list-like type (ItemList, Group,
// Container, Menu).
type Inserter interface {
	Get(path ...string) (Item, error)
	Insert(pos Position, items ...Item) error
}

// GetOrCreate returns the item id of l if it is a T, or creates it with
// create and inserts it at pos.
func GetOrCreate[T Item](l Inserter, id string, pos Position, create func(id string) (T, error)) (T, error) {
	var zero T

	existing, err := l.Get(id)
	if err == nil {
		t, ok := existing.(T)
		if !ok {
			return zero, fmt.Errorf(`%w: "%s" is a %T`, ErrTypeMismatch, id, existing)
		}
		return t, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return zero, err
	}

	created, err := create(id)
	if err != nil {
		return zero, err
	}
	if err := l.Insert(pos, created); err != nil {
		return zero, err
	}
	return created, nil
}
