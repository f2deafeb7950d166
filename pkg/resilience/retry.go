/**
 * @description
 * This package provides generic resilience decorators for read operations:
 * retry-with-fallback and rate-limit-with-fallback. A decorated call
 * always yields a value; policy exhaustion is resolved locally by the
 * registered fallback and is never surfaced as an error to the caller.
 */
package resilience

import (
	"context"
	"log"
	"time"
)

// RetryPolicy bounds the attempts of a retried call.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// Delay is the pause between consecutive attempts.
	Delay time.Duration
}

// Retry wraps fn so that it is attempted up to policy.MaxAttempts times.
// The first successful result is returned; once the budget is exhausted
// (or the context is done) the fallback value is returned instead.
func Retry[T any](policy RetryPolicy, fn func(ctx context.Context) (T, error), fallback func(err error) T) func(ctx context.Context) T {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return func(ctx context.Context) T {
		var lastErr error
		for attempt := 1; attempt <= attempts; attempt++ {
			value, err := fn(ctx)
			if err == nil {
				return value
			}
			lastErr = err
			log.Printf("Retryable call failed (attempt %d/%d): %v", attempt, attempts, err)

			if attempt == attempts {
				break
			}
			select {
			case <-ctx.Done():
				return fallback(ctx.Err())
			case <-time.After(policy.Delay):
			}
		}
		return fallback(lastErr)
	}
}
