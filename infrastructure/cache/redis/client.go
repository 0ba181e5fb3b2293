// ABOUTME: Redis cache backend for dataset snapshots built on go-redis
// ABOUTME: Lets several API replicas share one snapshot per key under a namespaced key prefix

package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"contractes-api/core/interfaces"
	"contractes-api/pkg/config"
)

const (
	connectTimeout = 5 * time.Second
	scanBatch      = 500
)

// RedisCache stores snapshot payloads as plain strings with a Redis-side TTL
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to the configured server and verifies it answers PING
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Address,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: connectTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisCacheFromClient wraps an existing client; prefix may be empty
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// Get returns interfaces.ErrCacheMiss for absent or expired keys
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, interfaces.ErrCacheMiss
	}
	return val, err
}

// Set stores value; ttl <= 0 keeps it until deleted
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Delete removes a key; a missing key is not an error
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Ping reports whether the server is reachable
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Stats counts the keys under this cache's prefix
func (c *RedisCache) Stats(ctx context.Context) (map[string]interface{}, error) {
	var (
		cursor uint64
		count  int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", scanBatch).Result()
		if err != nil {
			return nil, err
		}
		count += len(keys)
		if next == 0 {
			break
		}
		cursor = next
	}
	return map[string]interface{}{
		"total_entries": count,
		"key_prefix":    c.prefix,
	}, nil
}

// Close closes the connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}
