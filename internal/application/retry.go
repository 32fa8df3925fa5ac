package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/campus-reservations/internal/persistence"
)

const (
	storeRetryAttempts = 3
	storeRetryDelay    = 50 * time.Millisecond
)

// withStoreRetry re-runs fn while it fails with a transient store error.
// The whole critical section is retried, never an individual statement, so a
// retry always starts from a fresh read of the grant-equivalent set. Any
// other error aborts immediately.
func withStoreRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	delay := storeRetryDelay

	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}

		lastErr = fn()
		if lastErr == nil || !errors.Is(lastErr, persistence.ErrBusy) {
			return lastErr
		}
	}

	return fmt.Errorf("store unavailable after %d attempts: %w", storeRetryAttempts, lastErr)
}
