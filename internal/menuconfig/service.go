// Package menuconfig edits and loads the persisted menu configuration.
package menuconfig

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"creme-menu/internal/entry"
	"creme-menu/internal/logx"
	"creme-menu/internal/menu"
)

var svcLogger = logx.GetScope("menuconfig")

// MaxNameLength bounds container names.
const MaxNameLength = 200

// RecordCache caches the list of records.
type RecordCache interface {
	Get(ctx context.Context) ([]entry.Record, bool, error)
	Set(ctx context.Context, records []entry.Record) error
	Invalidate(ctx context.Context) error
}

// Notifier is told about configuration changes.
type Notifier interface {
	MenuChanged(ctx context.Context, ev ChangeEvent)
}

// Choice is an entry class which can be added.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Node is a record of the configuration tree.
type Node struct {
	entry.Record
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Children []Node `json:"children,omitempty"`
}

// Service edits the configuration; every operation runs in one transaction.
type Service struct {
	drv      *entsql.Driver
	registry *entry.Registry
	cache    RecordCache
	notifier Notifier
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables the record cache.
func WithCache(c RecordCache) Option { return func(s *Service) { s.cache = c } }

// WithNotifier enables change notifications.
func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

// NewService returns a service over drv.
func NewService(drv *entsql.Driver, registry *entry.Registry, opts ...Option) *Service {
	s := &Service{drv: drv, registry: registry}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Registry returns the entry registry.
func (s *Service) Registry() *entry.Registry { return s.registry }

func (s *Service) queries(conn dialect.ExecQuerier) *queries {
	return newQueries(conn, s.drv.Dialect())
}

// Records returns every record, from the cache when possible.
func (s *Service) Records(ctx context.Context) ([]entry.Record, error) {
	if s.cache != nil {
		recs, ok, err := s.cache.Get(ctx)
		if err != nil {
			svcLogger.Warn("read record cache", zap.Error(err))
		} else if ok {
			return recs, nil
		}
	}
	recs, err := s.queries(s.drv).all(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, recs); err != nil {
			svcLogger.Warn("write record cache", zap.Error(err))
		}
	}
	return recs, nil
}

// Menu builds a fresh menu from the current configuration.
func (s *Service) Menu(ctx context.Context) (*menu.Menu, error) {
	recs, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return s.registry.Menu(recs)
}

// Tree returns the records as a tree, with resolved labels.
func (s *Service) Tree(ctx context.Context) ([]Node, error) {
	recs, err := s.queries(s.drv).all(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0)
	for _, e := range s.registry.Entries(recs) {
		n := Node{Record: e.Record, Label: e.Label(), Required: e.Class.Required}
		for _, c := range e.Children {
			n.Children = append(n.Children, Node{Record: c.Record, Label: c.Label(), Required: c.Class.Required})
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ContainerChoices lists the level-1 classes no record uses.
func (s *Service) ContainerChoices(ctx context.Context) ([]Choice, error) {
	recs, err := s.queries(s.drv).all(ctx)
	if err != nil {
		return nil, err
	}
	return s.levelOneChoices(recs, nil), nil
}

// EditChoices lists the classes a container can hold: the ones not used by
// any record, plus its current children.
func (s *Service) EditChoices(ctx context.Context, id int) ([]Choice, error) {
	q := s.queries(s.drv)
	if _, err := s.container(ctx, q, id); err != nil {
		return nil, err
	}
	recs, err := q.all(ctx)
	if err != nil {
		return nil, err
	}
	return s.levelOneChoices(recs, &id), nil
}

// SpecialChoices lists the unused level-0 classes, the generic container
// excepted.
func (s *Service) SpecialChoices(ctx context.Context) ([]Choice, error) {
	recs, err := s.queries(s.drv).all(ctx)
	if err != nil {
		return nil, err
	}
	return s.specialChoices(recs), nil
}

func (s *Service) levelOneChoices(recs []entry.Record, containerID *int) []Choice {
	used := usedEntryIDs(recs, func(r entry.Record) bool {
		return containerID != nil && r.ParentID != nil && *r.ParentID == *containerID
	})
	return choices(s.registry.ClassesOfLevel(1), used)
}

func (s *Service) specialChoices(recs []entry.Record) []Choice {
	used := usedEntryIDs(recs, nil)
	used[entry.ContainerID] = struct{}{}
	return choices(s.registry.ClassesOfLevel(0), used)
}

func usedEntryIDs(recs []entry.Record, ignore func(entry.Record) bool) map[string]struct{} {
	used := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		if ignore != nil && ignore(r) {
			continue
		}
		used[r.EntryID] = struct{}{}
	}
	return used
}

func choices(classes []*entry.Class, used map[string]struct{}) []Choice {
	out := make([]Choice, 0, len(classes))
	for _, c := range classes {
		if _, ok := used[c.ID]; ok && !c.Multiple {
			continue
		}
		if c.ID == entry.ContainerID {
			continue
		}
		out = append(out, Choice{ID: c.ID, Label: c.Label})
	}
	slices.SortFunc(out, func(a, b Choice) int { return strings.Compare(a.ID, b.ID) })
	return out
}

func checkChoices(entryIDs []string, allowed []Choice) error {
	ok := lo.SliceToMap(allowed, func(c Choice) (string, struct{}) { return c.ID, struct{}{} })
	seen := make(map[string]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q is duplicated", ErrInvalidChoice, id)
		}
		seen[id] = struct{}{}
		if _, valid := ok[id]; !valid {
			return fmt.Errorf("%w: %q", ErrInvalidChoice, id)
		}
	}
	return nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// nextRootOrder is the order of a new top-level record: after every record
// using a level-0 class.
func (s *Service) nextRootOrder(ctx context.Context, q *queries) (int, error) {
	ids := lo.Map(s.registry.ClassesOfLevel(0), func(c *entry.Class, _ int) string { return c.ID })
	top, ok, err := q.maxOrder(ctx, ids)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return top + 1, nil
}

// AddContainer creates a container holding entries.
func (s *Service) AddContainer(ctx context.Context, name string, entryIDs []string) (entry.Record, error) {
	if err := checkName(name); err != nil {
		return entry.Record{}, err
	}

	var created entry.Record
	err := s.inTx(ctx, func(q *queries) error {
		recs, err := q.all(ctx)
		if err != nil {
			return err
		}
		if err := checkChoices(entryIDs, s.levelOneChoices(recs, nil)); err != nil {
			return err
		}
		order, err := s.nextRootOrder(ctx, q)
		if err != nil {
			return err
		}

		created = entry.Record{EntryID: entry.ContainerID, Order: order, Name: name}
		if created.ID, err = q.insert(ctx, created); err != nil {
			return err
		}
		for i, eid := range entryIDs {
			child := entry.Record{EntryID: eid, ParentID: &created.ID, Order: i}
			if _, err := q.insert(ctx, child); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return entry.Record{}, err
	}
	s.changed(ctx, ChangeEvent{Action: ActionContainerAdded, RecordID: created.ID})
	return created, nil
}

// AddSpecialContainer adds a top-level special entry (e.g. recent entities).
func (s *Service) AddSpecialContainer(ctx context.Context, entryID string) (entry.Record, error) {
	var created entry.Record
	err := s.inTx(ctx, func(q *queries) error {
		recs, err := q.all(ctx)
		if err != nil {
			return err
		}
		if err := checkChoices([]string{entryID}, s.specialChoices(recs)); err != nil {
			return err
		}
		order, err := s.nextRootOrder(ctx, q)
		if err != nil {
			return err
		}
		created = entry.Record{EntryID: entryID, Order: order}
		created.ID, err = q.insert(ctx, created)
		return err
	})
	if err != nil {
		return entry.Record{}, err
	}
	s.changed(ctx, ChangeEvent{Action: ActionSpecialAdded, RecordID: created.ID, EntryID: entryID})
	return created, nil
}

func (s *Service) container(ctx context.Context, q *queries, id int) (entry.Record, error) {
	rec, err := q.get(ctx, id)
	if err != nil {
		return entry.Record{}, err
	}
	if rec.EntryID != entry.ContainerID || !rec.IsRoot() {
		return entry.Record{}, fmt.Errorf("%w: menu item %d is not a container", ErrNotFound, id)
	}
	return rec, nil
}

// EditContainer renames a container and replaces its children. Existing
// child records are reused in order; surplus ones are deleted.
func (s *Service) EditContainer(ctx context.Context, id int, name string, entryIDs []string) (entry.Record, error) {
	if err := checkName(name); err != nil {
		return entry.Record{}, err
	}

	var rec entry.Record
	err := s.inTx(ctx, func(q *queries) error {
		var err error
		if rec, err = s.container(ctx, q, id); err != nil {
			return err
		}
		recs, err := q.all(ctx)
		if err != nil {
			return err
		}
		if err := checkChoices(entryIDs, s.levelOneChoices(recs, &id)); err != nil {
			return err
		}

		children, err := q.children(ctx, id)
		if err != nil {
			return err
		}
		keep := min(len(entryIDs), len(children))
		surplus := lo.Map(children[keep:], func(r entry.Record, _ int) int { return r.ID })
		if err := q.delete(ctx, surplus...); err != nil {
			return err
		}

		for idx, eid := range entryIDs {
			if idx < keep {
				child := children[idx]
				child.Order, child.EntryID = idx, eid
				if err := q.update(ctx, child); err != nil {
					return err
				}
				continue
			}
			if _, err := q.insert(ctx, entry.Record{EntryID: eid, ParentID: &id, Order: idx}); err != nil {
				return err
			}
		}

		rec.Name = name
		return q.update(ctx, rec)
	})
	if err != nil {
		return entry.Record{}, err
	}
	s.changed(ctx, ChangeEvent{Action: ActionContainerEdited, RecordID: id})
	return rec, nil
}

// DeleteContainer deletes a top-level record and its children. Required
// entries and records which do not resolve to a top-level entry are kept.
func (s *Service) DeleteContainer(ctx context.Context, id int) error {
	var entryID string
	err := s.inTx(ctx, func(q *queries) error {
		rec, err := q.get(ctx, id)
		if err != nil {
			return err
		}
		entryID = rec.EntryID
		entries := s.registry.Entries([]entry.Record{rec})
		if len(entries) == 0 {
			return fmt.Errorf("%w: menu item %d is not a top-level entry", ErrConflict, id)
		}
		if entries[0].Class.Required {
			return fmt.Errorf("%w: %s is required", ErrConflict, rec.EntryID)
		}
		return q.delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.changed(ctx, ChangeEvent{Action: ActionDeleted, RecordID: id, EntryID: entryID})
	return nil
}

// Replace swaps the whole configuration with roots and their children.
func (s *Service) Replace(ctx context.Context, roots []Node) error {
	err := s.inTx(ctx, func(q *queries) error {
		if err := q.deleteAll(ctx); err != nil {
			return err
		}
		for _, root := range roots {
			r := root.Record
			r.ParentID = nil
			id, err := q.insert(ctx, r)
			if err != nil {
				return err
			}
			for i, c := range root.Children {
				child := c.Record
				child.ParentID, child.Order = &id, i
				if _, err := q.insert(ctx, child); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.changed(ctx, ChangeEvent{Action: ActionReplaced})
	return nil
}

func (s *Service) inTx(ctx context.Context, fn func(q *queries) error) (err error) {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = errors.Join(err, rerr)
			}
		}
	}()
	if err = fn(s.queries(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Service) changed(ctx context.Context, ev ChangeEvent) {
	ev.At = time.Now()
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			svcLogger.Warn("invalidate record cache", zap.Error(err))
		}
	}
	svcLogger.Info("menu configuration changed",
		zap.String("action", string(ev.Action)), zap.Int("record", ev.RecordID))
	if s.notifier != nil {
		s.notifier.MenuChanged(ctx, ev)
	}
}
