// Package cache is a thin JSON cache over Redis. Stats responses are cached
// under a key derived from the full query parameter tuple; a newer write for
// the same key replaces the older value, so the latest request per key wins.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"channel-stats-backend/internal/platform/redis"
)

type Service struct {
	client *redis.Client
}

func New(client *redis.Client) *Service {
	return &Service{client: client}
}

// Get получает значение из кэша
func (c *Service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set сохраняет значение в кэш
func (c *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete удаляет значение из кэша
func (c *Service) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// GetOrSet returns the cached value when fresh, otherwise computes it via
// setter and stores the result for ttl. Errors from the cache itself fall
// through to the setter; only setter errors are returned.
func (c *Service) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := setter()
	if err != nil {
		return err
	}

	// Кэш недоступен - отдаем свежие данные без кэширования
	_ = c.Set(ctx, key, value, ttl)

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// InvalidateUserStats drops every cached stats response of one login, e.g.
// after the retention sweep pruned rows.
func (c *Service) InvalidateUserStats(ctx context.Context, login string) error {
	keys, err := c.client.Keys(ctx, fmt.Sprintf("stats:%s:*", login)).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}

// Key builds a cache key from its parts. Parts are joined verbatim, so the
// caller keeps the tuple deterministic (sorted slices, canonical dates).
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
