package repository

import (
	"context"
	"time"
)

// SessionStore keeps revoked session ids until the token would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
