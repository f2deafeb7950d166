/**
 * @description
 * Rate-limit decorator and the local fixed-window limiter backing it.
 * When the window's call budget is exhausted the decorator short-circuits
 * to the fallback without invoking the wrapped call at all.
 */
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is passed to the fallback when a call is short-circuited
// by the limiter.
var ErrRateLimited = errors.New("rate limit exceeded")

// Limiter decides whether one more call may proceed.
type Limiter interface {
	Allow(ctx context.Context) bool
}

// RateLimit wraps fn behind a limiter. Calls over the budget return the
// fallback value without invoking fn; a failing fn also resolves to the
// fallback so the caller always receives a value.
func RateLimit[T any](limiter Limiter, fn func(ctx context.Context) (T, error), fallback func(err error) T) func(ctx context.Context) T {
	return func(ctx context.Context) T {
		if !limiter.Allow(ctx) {
			return fallback(ErrRateLimited)
		}
		value, err := fn(ctx)
		if err != nil {
			return fallback(err)
		}
		return value
	}
}

// FixedWindowLimiter allows a fixed number of calls per rolling window.
// The counter resets when the window rolls over.
type FixedWindowLimiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	count       int
	windowStart time.Time
	now         func() time.Time
}

// NewFixedWindowLimiter creates a limiter allowing limit calls per window.
func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow consumes one slot of the current window if any remain.
func (l *FixedWindowLimiter) Allow(_ context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.count = 0
	}
	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}
