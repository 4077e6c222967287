package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/common/validation"
	"channel-stats-backend/internal/features/auth/password"
	"channel-stats-backend/internal/features/auth/repository"
)

type AuthService interface {
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, login, pass string) (string, error)
	// Resolve maps a session token back to its login.
	Resolve(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	sessionTTL time.Duration
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, sessionTTL time.Duration) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Login(ctx context.Context, login, pass string) (string, error) {
	if err := validation.ValidateLogin(login); err != nil {
		return "", apperrors.NewValidationError("login", err.Error())
	}
	if pass == "" {
		return "", apperrors.NewValidationError("password", "password cannot be empty")
	}

	user, err := s.users.GetByLogin(ctx, login)
	if errors.Is(err, repository.ErrUserNotFound) {
		// Same answer as a wrong password, no account enumeration.
		return "", apperrors.NewUnauthorizedError("invalid credentials")
	}
	if err != nil {
		return "", apperrors.NewDatabaseError("get user", err)
	}

	if err := password.Verify(pass, user.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", apperrors.NewUnauthorizedError("invalid credentials")
		}
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "verify password")
	}

	token := uuid.New().String()
	if err := s.sessions.Create(ctx, token, login, s.sessionTTL); err != nil {
		return "", apperrors.NewCacheError("create session", err)
	}

	return token, nil
}

func (s *authService) Resolve(ctx context.Context, token string) (string, error) {
	login, err := s.sessions.Get(ctx, token)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return "", apperrors.New(apperrors.ErrCodeSessionExpired, "session expired")
	}
	if err != nil {
		return "", apperrors.NewCacheError("get session", err)
	}
	return login, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperrors.NewCacheError("delete session", err)
	}
	return nil
}
