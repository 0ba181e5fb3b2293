// Package interfaces holds the seams the engine is wired through: cache
// backends, the outbound HTTP client, logging, metrics and the clock.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired
var ErrCacheMiss = errors.New("key not found")

// Cache is a byte-oriented key/value store with per-key TTL.
// The snapshot store keeps JSON envelopes in it under SHA-1 keys and decides
// validity itself, so a backend TTL is only an upper bound on retention.
type Cache interface {
	// Get returns ErrCacheMiss when the key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttl; ttl <= 0 keeps it until deleted
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete is a no-op for missing keys
	Delete(ctx context.Context, key string) error
}
