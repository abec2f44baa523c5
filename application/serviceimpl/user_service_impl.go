package serviceimpl

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskly/domain/dto"
	"taskly/domain/models"
	"taskly/domain/ports"
	"taskly/domain/repositories"
	"taskly/domain/services"
	"taskly/pkg/apperrors"
	"taskly/pkg/logger"
	"taskly/pkg/utils"
)

const (
	resetTokenLength = 48
	resetTokenTTL    = time.Hour
)

type UserServiceImpl struct {
	userRepo    repositories.UserRepository
	resetTokens ports.ResetTokenStore
	notifier    services.NotificationService
	jwtSecret   string
}

func NewUserService(userRepo repositories.UserRepository, resetTokens ports.ResetTokenStore, notifier services.NotificationService, jwtSecret string) services.UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		resetTokens: resetTokens,
		notifier:    notifier,
		jwtSecret:   jwtSecret,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		logger.WarnContext(ctx, "Registration rejected, email taken", "email", req.Email)
		return nil, apperrors.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		Password:  string(hashedPassword),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)

	s.notifier.Notify(ctx, services.NotificationWelcome, user.Email, map[string]string{
		"username": user.DisplayName(),
	})

	return user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.WarnContext(ctx, "Login failed, email not found", "email", req.Email)
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed, account disabled", "user_id", user.ID)
		return "", nil, apperrors.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed, invalid password", "user_id", user.ID)
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "email", user.Email)

	return token, user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ForgotPassword issues a reset token. An unknown email is handled silently
// so the endpoint cannot be used to enumerate accounts.
func (s *UserServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.InfoContext(ctx, "Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := utils.GenerateRandomString(resetTokenLength)
	if err := s.resetTokens.Store(ctx, token, user.ID.String(), resetTokenTTL); err != nil {
		logger.ErrorContext(ctx, "Failed to store reset token", "user_id", user.ID, "error", err)
		return err
	}

	s.notifier.Notify(ctx, services.NotificationPasswordReset, user.Email, map[string]string{
		"username": user.DisplayName(),
		"token":    token,
	})

	logger.InfoContext(ctx, "Password reset token issued", "user_id", user.ID)
	return nil
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	userIDStr, err := s.resetTokens.Consume(ctx, req.Token)
	if err != nil {
		return err
	}
	if userIDStr == "" {
		return apperrors.ErrInvalidResetToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to update password", "user_id", user.ID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Password reset", "user_id", user.ID)
	return nil
}

func (s *UserServiceImpl) GenerateJWT(user *models.User) (string, error) {
	claims := utils.JWTClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24 * 7)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
