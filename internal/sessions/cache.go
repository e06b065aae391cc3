// Package sessions holds the revocable refresh session of each user: one
// entry per user whose value is the digest of the currently valid refresh token.
package sessions

import (
	"context"
	"time"
)

// KeyPrefix namespaces refresh session entries in the cache.
const KeyPrefix = "refresh:"

// Key returns the cache key of userID's refresh session.
func Key(userID string) string { return KeyPrefix + userID }

// Cache stores at most one refresh session per user.
// Save overwrites, Delete is idempotent, Get reports absence with ok=false.
type Cache interface {
	Save(ctx context.Context, userID, tokenHash string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (tokenHash string, ok bool, err error)
	Delete(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
}
