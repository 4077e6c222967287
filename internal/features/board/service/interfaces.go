package service

import (
	"context"
	"time"
)

// Cache is the slice of the shared cache the board service uses.
type Cache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error
}
