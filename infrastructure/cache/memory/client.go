// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Provides a process-local snapshot backend with TTL support and periodic cleanup

package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"contractes-api/core/interfaces"
)

const (
	defaultExpiration = time.Hour
	cleanupInterval   = 10 * time.Minute
)

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := c.items.Get(key)
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}

	// Return a copy of the value
	stored := value.([]byte)
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value in the cache with the given TTL.
// A TTL <= 0 stores the value without expiry.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}
	c.items.Set(key, valueCopy, expiration)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Delete(key)
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{
		"total_entries": c.items.ItemCount(),
	}, nil
}
