package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"contractes-api/core/interfaces"
	"contractes-api/pkg/config"
)

// These are integration tests against a live Redis.
// Run them with REDIS_TEST=1 and optionally REDIS_ADDRESS.

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	if os.Getenv("REDIS_TEST") != "1" {
		t.Skip("Skipping Redis integration tests - set REDIS_TEST=1 to run")
	}
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}

	cache, err := NewRedisCache(config.RedisConfig{Address: addr, DB: 15, KeyPrefix: "contractes-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache returned error: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestNewRedisCache_InvalidAddress(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{Address: ""})

	if err == nil {
		t.Error("NewRedisCache should return error for empty address")
	}
	if cache != nil {
		t.Error("NewRedisCache should return nil cache for invalid config")
	}
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	key := "snapshot:test-set-get"

	if err := cache.Set(ctx, key, []byte(`{"records":[]}`), time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != `{"records":[]}` {
		t.Errorf("Get returned %s", string(got))
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, key); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get after Delete error = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_Get_NonExistentKey(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "snapshot:does-not-exist")

	if !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get error = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_Set_AppliesTTL(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	key := "snapshot:test-ttl"

	if err := cache.Set(ctx, key, []byte("v"), time.Second); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)

	if _, err := cache.Get(ctx, key); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get after TTL error = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_Delete_NonExistentKey(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.Delete(context.Background(), "snapshot:never-set"); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
}

func TestRedisCache_Ping(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.Ping(context.Background()); err != nil {
		t.Errorf("Ping returned error: %v", err)
	}
}

func TestRedisCache_StatsCountsPrefixedKeys(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"snapshot:stats-a", "snapshot:stats-b"} {
		if err := cache.Set(ctx, k, []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
		t.Cleanup(func() { _ = cache.Delete(ctx, k) })
	}

	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if n, _ := stats["total_entries"].(int); n < 2 {
		t.Errorf("total_entries = %v, want at least 2", stats["total_entries"])
	}
	if stats["key_prefix"] != "contractes-test:" {
		t.Errorf("key_prefix = %v", stats["key_prefix"])
	}
}
