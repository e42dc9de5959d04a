package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface backs the dashboard snapshots, their generation counter
// and the login attempt counters.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	// Expire reports false when the key does not exist.
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}
