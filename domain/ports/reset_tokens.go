package ports

import (
	"context"
	"time"
)

// ResetTokenStore holds single-use password reset tokens with a TTL.
// Backed by Redis in production, a map in tests.
type ResetTokenStore interface {
	Store(ctx context.Context, token, userID string, ttl time.Duration) error

	// Consume resolves and invalidates a token. An unknown or expired token
	// returns ("", nil).
	Consume(ctx context.Context, token string) (string, error)
}
