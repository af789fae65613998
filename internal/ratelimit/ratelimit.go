// Package ratelimit provides the self-imposed outbound pacing used when
// talking to the AI service and when scraping article pages.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IntervalLimiter enforces a minimum spacing between successive calls. It is a
// token bucket with burst 1, safe to share between concurrent workers, and
// optionally caps the total number of calls per run (maxCalls 0 = unlimited).
type IntervalLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	calls    int
	maxCalls int
}

// NewIntervalLimiter creates a limiter allowing one call per interval.
func NewIntervalLimiter(interval time.Duration, maxCalls int) *IntervalLimiter {
	if interval <= 0 {
		interval = time.Second
	}
	return &IntervalLimiter{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		maxCalls: maxCalls,
	}
}

// Wait blocks until the next call is allowed, or returns an error when the
// per-run quota is exhausted or ctx is done.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	if l.maxCalls > 0 && l.calls >= l.maxCalls {
		l.mu.Unlock()
		return fmt.Errorf("request quota exhausted (%d/%d)", l.calls, l.maxCalls)
	}
	l.calls++
	l.mu.Unlock()

	return l.limiter.Wait(ctx)
}

// Calls returns how many calls have been admitted so far this run.
func (l *IntervalLimiter) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
