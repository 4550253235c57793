package menuconfig

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"creme-menu/internal/entry"
)

// CacheKey is the redis key of the cached records.
const CacheKey = "menu:config:records"

// RedisCache caches the records as JSON. A TTL <= 0 disables caching.
type RedisCache struct {
	rdb redis.UniversalClient
	ttl func() time.Duration
}

// NewRedisCache returns a cache; ttl is read on every write so it can be
// reloaded at runtime.
func NewRedisCache(rdb redis.UniversalClient, ttl func() time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) enabled() bool { return c != nil && c.rdb != nil && c.ttl() > 0 }

func (c *RedisCache) Get(ctx context.Context) ([]entry.Record, bool, error) {
	if !c.enabled() {
		return nil, false, nil
	}
	b, err := c.rdb.Get(ctx, CacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var recs []entry.Record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, false, err
	}
	return recs, true, nil
}

func (c *RedisCache) Set(ctx context.Context, recs []entry.Record) error {
	if !c.enabled() {
		return nil
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, CacheKey, b, c.ttl()).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, CacheKey).Err()
}
