package cache

import (
	"context"
	"time"
)

// Cache is the counter store behind per-user request quotas.
// Implementations: Redis in production, in-memory fakes in tests.
type Cache interface {
	// Increment adds one to key and returns the new value.
	// A missing key starts from zero.
	Increment(ctx context.Context, key string) (int64, error)

	// Expire sets a TTL on key
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Ping checks the connection
	Ping(ctx context.Context) error
}
