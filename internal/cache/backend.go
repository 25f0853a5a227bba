// Package cache implements the cache-aside layer: a narrow key-value backend
// interface (Redis in deployment, an in-process map for dev and tests), a
// Store with hit/miss accounting on top of it, and pattern-based invalidation
// for habit mutations.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Backend.Get when the key is absent.
var ErrCacheMiss = errors.New("cache: key not found")

// Backend is the key-value collaborator behind the Store. Patterns use Redis
// KEYS glob syntax ('*' and '?').
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	FlushAll(ctx context.Context) error
	Ping(ctx context.Context) error
	Size(ctx context.Context) (int64, error)
}

// Connect selects the backend: a Redis client when redisURL is set, otherwise
// the in-process backend (local development and tests).
func Connect(redisURL string) (Backend, error) {
	if redisURL == "" {
		return NewMemoryBackend(), nil
	}
	return newRedisBackend(redisURL)
}
