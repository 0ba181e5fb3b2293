package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"contractes-api/core/domain"
	"contractes-api/core/interfaces"
	"contractes-api/core/source"
)

// MockFetcher is a testify mock of the source adapter
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, p source.Params) ([]domain.Record, error) {
	args := m.Called(ctx, p)
	records, _ := args.Get(0).([]domain.Record)
	return records, args.Error(1)
}

func (m *MockFetcher) Endpoint() string {
	return "https://example.test/resource/abc.json"
}

// memoryCache is a map-backed Cache
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

// MockLogger records warnings
type MockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *MockLogger) Info(msg string, fields map[string]interface{})  {}
func (l *MockLogger) Error(msg string, fields map[string]interface{}) {}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
