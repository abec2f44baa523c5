package redis

import (
	"context"
	"time"

	"taskly/domain/ports"
)

// ResetTokenStore adapts the Redis client to the reset-token port.
type ResetTokenStore struct {
	client *Client
}

func NewResetTokenStore(client *Client) ports.ResetTokenStore {
	return &ResetTokenStore{client: client}
}

func (s *ResetTokenStore) Store(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.StoreResetToken(ctx, token, userID, ttl)
}

func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.ConsumeResetToken(ctx, token)
	if err != nil {
		if IsCacheMiss(err) {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}
