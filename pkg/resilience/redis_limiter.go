/**
 * @description
 * Redis-backed fixed-window limiter for multi-instance deployments. The
 * window counter lives in Redis so every replica shares one budget.
 *
 * @dependencies
 * - github.com/redis/go-redis/v9: Redis client and Lua script support.
 *
 * @notes
 * - The limiter fails open: if Redis is unreachable the call is allowed,
 *   since the protected endpoints degrade to a fallback value anyway and
 *   a dead cache must not take the diagnostics surface down with it.
 */
package resilience

import (
	"context"
	"log"
	"strings"

	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter implements Limiter on a shared Redis counter.
type RedisLimiter struct {
	client redis.UniversalClient
	key    string
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a limiter allowing limit calls per window,
// counted under the given key.
func NewRedisLimiter(client redis.UniversalClient, key string, limit int, window time.Duration) *RedisLimiter {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		trimmed = "eazybank:rate_limit"
	}
	return &RedisLimiter{client: client, key: trimmed, limit: limit, window: window}
}

// Allow increments the window counter and reports whether the call is
// within budget.
func (l *RedisLimiter) Allow(ctx context.Context) bool {
	if l.client == nil || l.limit <= 0 || l.window <= 0 {
		return true
	}

	windowMs := l.window.Milliseconds()
	if windowMs < 1000 {
		windowMs = 1000
	}

	current, err := fixedWindowScript.Run(ctx, l.client, []string{l.key}, windowMs).Int64()
	if err != nil {
		log.Printf("Redis limiter unavailable, allowing call: %v", err)
		return true
	}
	return current <= int64(l.limit)
}
