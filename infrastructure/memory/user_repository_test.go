package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"taskly/domain/models"
	"taskly/domain/repositories"
	"taskly/pkg/apperrors"
)

type UserRepositorySuite struct {
	suite.Suite
	repo repositories.UserRepository
	ctx  context.Context
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) SetupTest() {
	s.repo = NewUserRepository()
	s.ctx = context.Background()
}

func (s *UserRepositorySuite) newUser(email string) *models.User {
	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		IsActive: true,
	}
	s.Require().NoError(s.repo.Create(s.ctx, user))
	return user
}

func (s *UserRepositorySuite) TestLookups() {
	user := s.newUser("alice@example.com")

	s.Run("finds by ID", func() {
		found, err := s.repo.GetByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user.Email, found.Email)
	})

	s.Run("finds by email", func() {
		found, err := s.repo.GetByEmail(s.ctx, "alice@example.com")
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("unknown ID returns not found", func() {
		_, err := s.repo.GetByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, apperrors.ErrNotFound)
	})

	s.Run("unknown email returns not found", func() {
		_, err := s.repo.GetByEmail(s.ctx, "nobody@example.com")
		s.Require().ErrorIs(err, apperrors.ErrNotFound)
	})
}

func (s *UserRepositorySuite) TestUpdateIsolation() {
	user := s.newUser("bob@example.com")

	// Mutating the returned copy must not leak into the store.
	found, err := s.repo.GetByID(s.ctx, user.ID)
	s.Require().NoError(err)
	found.Email = "mutated@example.com"

	again, err := s.repo.GetByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("bob@example.com", again.Email)

	found.UpdatedAt = time.Now()
	s.Require().NoError(s.repo.Update(s.ctx, found))

	again, err = s.repo.GetByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("mutated@example.com", again.Email)
}

func (s *UserRepositorySuite) TestDelete() {
	user := s.newUser("gone@example.com")

	s.Require().NoError(s.repo.Delete(s.ctx, user.ID))

	_, err := s.repo.GetByID(s.ctx, user.ID)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)

	s.Require().ErrorIs(s.repo.Delete(s.ctx, user.ID), apperrors.ErrNotFound)
}
