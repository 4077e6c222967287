package repository

import (
	"context"
	"errors"
	"time"

	"channel-stats-backend/internal/features/auth/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)

// UserRepository stores dashboard accounts.
type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// SessionRepository stores opaque session tokens with a TTL.
type SessionRepository interface {
	Create(ctx context.Context, token, login string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
