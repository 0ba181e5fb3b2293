package search

import (
	"context"
	"sync"
	"time"

	"contractes-api/core/domain"
	"contractes-api/core/interfaces"
	"contractes-api/core/source"
)

// mockFetcher is a mock implementation of the Fetcher interface
type mockFetcher struct {
	mu        sync.Mutex
	calls     []source.Params
	fetchFunc func(ctx context.Context, p source.Params) ([]domain.Record, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, p source.Params) ([]domain.Record, error) {
	m.mu.Lock()
	m.calls = append(m.calls, p)
	m.mu.Unlock()
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, p)
	}
	return []domain.Record{}, nil
}

func (m *mockFetcher) Endpoint() string {
	return "https://example.test/resource/abc.json"
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// memoryCache is a minimal map-backed Cache
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
