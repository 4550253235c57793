package redisx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"creme-menu/internal/menu"
)

const recentTTL = 30 * 24 * time.Hour

// RecentStore keeps the last visited entities of each user in a redis list,
// most recent first.
type RecentStore struct {
	rdb redis.UniversalClient
	max func() int
}

// NewRecentStore returns a store keeping at most max() entities per user.
func NewRecentStore(rdb redis.UniversalClient, max func() int) *RecentStore {
	return &RecentStore{rdb: rdb, max: max}
}

func recentKey(userID string) string { return "menu:recent:" + userID }

// Push records a visit; a visited entity moves to the head of the list.
func (s *RecentStore) Push(ctx context.Context, userID string, e menu.RecentEntity) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	key := recentKey(userID)
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LRem(ctx, key, 0, b)
		p.LPush(ctx, key, b)
		p.LTrim(ctx, key, 0, int64(lo.Max([]int{s.max(), 1})-1))
		p.Expire(ctx, key, recentTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push recent entity: %w", err)
	}
	return nil
}

// List returns the recent entities of a user.
func (s *RecentStore) List(ctx context.Context, userID string) ([]menu.RecentEntity, error) {
	raw, err := s.rdb.LRange(ctx, recentKey(userID), 0, int64(s.max()-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent entities: %w", err)
	}
	out := make([]menu.RecentEntity, 0, len(raw))
	for _, r := range raw {
		var e menu.RecentEntity
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// For returns the provider of a user's recent entities.
func (s *RecentStore) For(userID string) menu.RecentProvider {
	return userRecent{store: s, userID: userID}
}

type userRecent struct {
	store  *RecentStore
	userID string
}

func (u userRecent) RecentEntities(ctx context.Context) ([]menu.RecentEntity, error) {
	return u.store.List(ctx, u.userID)
}
