package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so implementations can be
// swapped (Redis in deployment, in-memory fake in tests).
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Increment is used for failed-login counters.
	Increment(ctx context.Context, key string) (int64, error)

	// Expire sets a TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Publish fans a JSON payload out on a pub/sub channel.
	// Fire-and-forget: no delivery or ordering guarantee.
	Publish(ctx context.Context, channel string, payload interface{}) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
