package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

const revokedSessionKeyPrefix = "session:revoked:"

type sessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) repository.SessionStore {
	return &sessionStore{client: client}
}

func (s *sessionStore) key(tokenID string) string {
	return revokedSessionKeyPrefix + tokenID
}

// Revoke marks tokenID as logged out. A non-positive ttl means the token has
// already expired and nothing is stored.
func (s *sessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("cannot revoke session with empty token id")
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session %s: %w", tokenID, err)
	}
	return nil
}

func (s *sessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session %s: %w", tokenID, err)
	}
	return n > 0, nil
}
