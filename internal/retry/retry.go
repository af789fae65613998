// Package retry provides the bounded retry loop used around feed downloads.
package retry

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig bounds a retry loop. Backoff scales the delay linearly with the
// attempt number.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool
}

// WithRetry runs fn up to MaxAttempts times, sleeping between failures, and
// returns the last error wrapped with the attempt count. Cancelling ctx stops
// the loop between attempts.
func WithRetry(ctx context.Context, config RetryConfig, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if attempt == config.MaxAttempts {
				return fmt.Errorf("failed after %d attempts: %w", config.MaxAttempts, err)
			}

			delay := config.Delay
			if config.Backoff {
				delay = time.Duration(attempt) * config.Delay
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
		return nil
	}

	return lastErr
}
