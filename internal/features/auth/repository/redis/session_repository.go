package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"channel-stats-backend/internal/features/auth/repository"
	platformredis "channel-stats-backend/internal/platform/redis"
)

const keyPrefixSession = "session:"

type sessionRepository struct {
	client *platformredis.Client
}

func NewSessionRepository(client *platformredis.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) Create(ctx context.Context, token, login string, ttl time.Duration) error {
	return r.client.Set(ctx, keyPrefixSession+token, login, ttl).Err()
}

func (r *sessionRepository) Get(ctx context.Context, token string) (string, error) {
	login, err := r.client.Get(ctx, keyPrefixSession+token).Result()
	if errors.Is(err, goredis.Nil) {
		return "", repository.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return login, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, keyPrefixSession+token).Err()
}
