// Package memory provides in-memory implementations of the repository
// interfaces. They keep local development and the service tests independent
// of a running Postgres, and intentionally favor clarity over performance.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"taskly/domain/models"
	"taskly/domain/repositories"
	"taskly/pkg/apperrors"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewUserRepository() repositories.UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		u := user
		return &u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
