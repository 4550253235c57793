// Package redisx opens the Redis client shared by the menu cache, the
// recent entities store and the rate limiter.
package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"creme-menu/internal/config"
	"creme-menu/internal/logx"
)

var redisLogger = logx.GetScope("redis")

const pingTimeout = 2 * time.Second

// Open connects to cfg.Redis.Addr. Without an address it returns a nil
// client and the features backed by Redis fall back to their in-process
// variants.
func Open(cfg *config.Config) (*redis.Client, func(), error) {
	if cfg.Redis.Addr == "" {
		redisLogger.Info("redis disabled")
		return nil, func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, func() {}, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}
	redisLogger.Info("redis connected", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))

	return rdb, func() {
		if err := rdb.Close(); err != nil {
			redisLogger.Warn("redis close", zap.Error(err))
		}
	}, nil
}
