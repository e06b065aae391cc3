package database

import (
	"context"
	"time"

	"github.com/famsalud/famsalud/backend/api/pkg/logger"
)

// Attempts and InitialBackoff bound the startup connection retry; the backoff doubles per attempt.
var (
	Attempts       = 5
	InitialBackoff = time.Second
)

// withRetry calls fn until it succeeds, ctx is done, or Attempts is exhausted.
func withRetry(ctx context.Context, what string, fn func() error) error {
	backoff := InitialBackoff
	var err error
	for attempt := 1; attempt <= Attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		logger.Warnf("attempt %d/%d: failed to connect to %s: %v", attempt, Attempts, what, err)
		if attempt == Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
