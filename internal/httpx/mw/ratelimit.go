package mw

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"creme-menu/internal/logx"
)

var rateLogger = logx.GetScope("ratelimit")

var incrScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then redis.call('PEXPIRE', KEYS[1], ARGV[1]) end
return current`)

func rateKey(c *fiber.Ctx) string {
	sub := ""
	if ac := Auth(c); ac != nil {
		sub = ac.Subject
	}
	return fmt.Sprintf("ip:%s|sub:%s", c.IP(), sub)
}

// RateLimitDefault limits requests per ip+subject. The window is shared
// through Redis when rdb is set, otherwise it is kept in memory.
func RateLimitDefault(rdb redis.Scripter, windowSec int, limit int) fiber.Handler {
	if rdb == nil {
		return limiter.New(limiter.Config{
			Max:          limit,
			Expiration:   time.Duration(windowSec) * time.Second,
			KeyGenerator: rateKey,
			LimitReached: func(_ *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
			},
		})
	}
	return func(c *fiber.Ctx) error {
		key := "rl:" + rateKey(c)
		ctx, cancel := context.WithTimeout(c.Context(), 200*time.Millisecond)
		defer cancel()
		ttlMs := int64(windowSec) * 1000
		res, err := incrScript.Run(ctx, rdb, []string{key}, ttlMs).Result()
		if err != nil {
			// fail open
			rateLogger.Warn("rate limit script failed", zap.String("key", key), zap.Error(err))
			return c.Next()
		}
		n, _ := res.(int64)
		c.Set("X-RateLimit-Limit", fmt.Sprint(limit))
		c.Set("X-RateLimit-Remaining", fmt.Sprint(lo.Max([]int64{0, int64(limit) - n})))
		if n > int64(limit) {
			c.Set("Retry-After", fmt.Sprint(windowSec))
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		}
		return c.Next()
	}
}
