package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_ReturnsValueOnFirstSuccess(t *testing.T) {
	calls := 0
	wrapped := Retry(RetryPolicy{MaxAttempts: 3}, func(ctx context.Context) (string, error) {
		calls++
		return "1.0.0", nil
	}, func(err error) string {
		t.Fatalf("fallback must not run on success, got %v", err)
		return ""
	})

	if got := wrapped(context.Background()); got != "1.0.0" {
		t.Fatalf("expected wrapped value, got %q", got)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestRetry_RecoversAfterTransientFailures(t *testing.T) {
	calls := 0
	wrapped := Retry(RetryPolicy{MaxAttempts: 3}, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "1.0.0", nil
	}, func(error) string { return "fallback" })

	if got := wrapped(context.Background()); got != "1.0.0" {
		t.Fatalf("expected recovery on third attempt, got %q", got)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestRetry_FallsBackAfterBudgetExhausted(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	wrapped := Retry(RetryPolicy{MaxAttempts: 3}, func(ctx context.Context) (string, error) {
		calls++
		return "", boom
	}, func(err error) string {
		if !errors.Is(err, boom) {
			t.Fatalf("fallback expected last error, got %v", err)
		}
		return "0.9"
	})

	if got := wrapped(context.Background()); got != "0.9" {
		t.Fatalf("expected fallback value, got %q", got)
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", calls)
	}
}

func TestRateLimit_ShortCircuitsOverBudget(t *testing.T) {
	limiter := NewFixedWindowLimiter(2, time.Hour)
	calls := 0
	wrapped := RateLimit(limiter, func(ctx context.Context) (string, error) {
		calls++
		return "live", nil
	}, func(err error) string {
		if !errors.Is(err, ErrRateLimited) {
			t.Fatalf("expected ErrRateLimited, got %v", err)
		}
		return "fallback"
	})

	ctx := context.Background()
	if got := wrapped(ctx); got != "live" {
		t.Fatalf("first call: expected live value, got %q", got)
	}
	if got := wrapped(ctx); got != "live" {
		t.Fatalf("second call: expected live value, got %q", got)
	}
	if got := wrapped(ctx); got != "fallback" {
		t.Fatalf("third call: expected fallback, got %q", got)
	}
	if calls != 2 {
		t.Fatalf("wrapped call must not run over budget; ran %d times", calls)
	}
}

func TestFixedWindowLimiter_ResetsOnWindowRollover(t *testing.T) {
	limiter := NewFixedWindowLimiter(1, time.Minute)

	current := time.Now()
	limiter.now = func() time.Time { return current }

	ctx := context.Background()
	if !limiter.Allow(ctx) {
		t.Fatal("first call of the window must be allowed")
	}
	if limiter.Allow(ctx) {
		t.Fatal("second call of the window must be denied")
	}

	current = current.Add(time.Minute)
	if !limiter.Allow(ctx) {
		t.Fatal("call after rollover must be allowed again")
	}
}

func TestRateLimit_FallsBackWhenCallFails(t *testing.T) {
	limiter := NewFixedWindowLimiter(10, time.Hour)
	wrapped := RateLimit(limiter, func(ctx context.Context) (string, error) {
		return "", errors.New("env not set")
	}, func(error) string { return "fallback" })

	if got := wrapped(context.Background()); got != "fallback" {
		t.Fatalf("expected fallback on call error, got %q", got)
	}
}
