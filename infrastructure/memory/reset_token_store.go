package memory

import (
	"context"
	"sync"
	"time"

	"taskly/domain/ports"
)

type resetToken struct {
	userID    string
	expiresAt time.Time
}

// ResetTokenStore is the in-memory fallback used when Redis is not
// configured, and in tests.
type ResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]resetToken
}

func NewResetTokenStore() ports.ResetTokenStore {
	return &ResetTokenStore{tokens: make(map[string]resetToken)}
}

func (s *ResetTokenStore) Store(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = resetToken{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *ResetTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok {
		return "", nil
	}
	delete(s.tokens, token)
	if time.Now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.userID, nil
}
