package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"contractes-api/core/interfaces"
)

func TestNewMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	if cache == nil {
		t.Error("NewMemoryCache returned nil")
	}
}

func TestMemoryCache_Get_ExistingKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "snapshot:abc"
	value := []byte(`{"records":[]}`)
	if err := cache.Set(ctx, key, value, 1*time.Hour); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get returned %s, want %s", string(got), string(value))
	}
}

func TestMemoryCache_Get_NonExistentKey(t *testing.T) {
	cache := NewMemoryCache()

	got, err := cache.Get(context.Background(), "non-existent")

	if !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get error = %v, want ErrCacheMiss", err)
	}
	if got != nil {
		t.Error("Get should return nil value for non-existent key")
	}
}

func TestMemoryCache_Get_ExpiredKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get on expired key error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Set_NoExpiration(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); err != nil {
		t.Errorf("Get returned error for non-expiring key: %v", err)
	}
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	value := []byte("original")

	_ = cache.Set(ctx, "k", value, time.Hour)
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	got[1] = 'Y'

	again, _ := cache.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("cache value was mutated: %s", string(again))
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("v"), time.Hour)
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); err == nil {
		t.Error("Get should fail after Delete")
	}
	if err := cache.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cache.Set(ctx, "k", []byte("v"), time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Set error = %v, want context.Canceled", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v, want context.Canceled", err)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	_ = cache.Set(ctx, "a", []byte("1"), time.Hour)
	_ = cache.Set(ctx, "b", []byte("2"), time.Hour)
	_ = cache.Delete(ctx, "a")

	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats["total_entries"] != 1 {
		t.Errorf("total_entries = %v, want 1", stats["total_entries"])
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			_ = cache.Set(ctx, key, []byte("v"), time.Hour)
			_, _ = cache.Get(ctx, key)
			_ = cache.Delete(ctx, key)
		}(i)
	}
	wg.Wait()
}
