package menuconfig

import (
	"context"

	"go.uber.org/zap"

	"creme-menu/internal/entry"
)

// Root is a shortcut to declare a top-level record of a default tree.
func Root(entryID, name string, children ...string) Node {
	n := Node{Record: entry.Record{EntryID: entryID, Name: name}}
	for _, c := range children {
		n.Children = append(n.Children, Node{Record: entry.Record{EntryID: c}})
	}
	return n
}

// Seed stores roots when the configuration is empty. It reports whether
// anything was written.
func (s *Service) Seed(ctx context.Context, roots []Node) (bool, error) {
	recs, err := s.queries(s.drv).all(ctx)
	if err != nil {
		return false, err
	}
	if len(recs) > 0 {
		svcLogger.Debug("menu already configured", zap.Int("records", len(recs)))
		return false, nil
	}
	for i := range roots {
		roots[i].Order = i
	}
	if err := s.Replace(ctx, roots); err != nil {
		return false, err
	}
	return true, nil
}
