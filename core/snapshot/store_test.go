package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"contractes-api/core/domain"
	coreerrors "contractes-api/core/errors"
	"contractes-api/core/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = NewKey("https://example.test/resource/abc.json", "%24limit=10")

func sampleRecords() []domain.Record {
	return []domain.Record{
		{"denominacio_adjudicatari": "INCASOL", "import_adjudicacio_amb_iva": json.Number("1234.50")},
		{"denominacio_adjudicatari": "ACME SL", "enllac_publicacio": map[string]any{"url": "https://x.cat"}},
	}
}

func newTestStore(cache interfaces.Cache, clock interfaces.Clock) *Store {
	return NewStore(interfaces.Dependencies{Cache: cache, Clock: clock})
}

func TestKey(t *testing.T) {
	a := NewKey("https://e/x.json", "%24limit=10")
	b := NewKey("https://e/x.json", "%24limit=10")
	c := NewKey("https://e/x.json", "%24limit=11")

	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())
	assert.Equal(t, "https://e/x.json?%24limit=10", a.Canonical())
	assert.Equal(t, "https://e/x.json", NewKey("https://e/x.json", "").Canonical())
	assert.Len(t, a.ID(), len(keyPrefix)+40)
}

func TestStore_GetOrFetch_CachesWithinTTL(t *testing.T) {
	cache := newMockCache()
	clock := newFakeClock()
	store := newTestStore(cache, clock)
	var fetches int32
	fetch := func(ctx context.Context) ([]domain.Record, error) {
		atomic.AddInt32(&fetches, 1)
		return sampleRecords(), nil
	}

	first, err := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
	require.NoError(t, err)
	clock.Advance(59 * time.Minute)
	second, err := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	assert.Equal(t, string(firstJSON), string(secondJSON))
	assert.Equal(t, json.Number("1234.50"), second[0]["import_adjudicacio_amb_iva"])
}

func TestStore_GetOrFetch_CallersGetIndependentCopies(t *testing.T) {
	store := newTestStore(newMockCache(), newFakeClock())
	fetch := func(ctx context.Context) ([]domain.Record, error) { return sampleRecords(), nil }

	first, err := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
	require.NoError(t, err)
	first[0]["denominacio_adjudicatari"] = "mutated"

	second, err := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
	require.NoError(t, err)
	assert.Equal(t, "INCASOL", second[0]["denominacio_adjudicatari"])
}

func TestStore_GetOrFetch_RefetchesAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(newMockCache(), clock)
	var fetches int32
	fetch := func(ctx context.Context) ([]domain.Record, error) {
		atomic.AddInt32(&fetches, 1)
		return sampleRecords(), nil
	}

	_, err := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestStore_GetOrFetch_CoalescesConcurrentMisses(t *testing.T) {
	store := newTestStore(newMockCache(), newFakeClock())
	var fetches int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]domain.Record, error) {
		atomic.AddInt32(&fetches, 1)
		<-release
		return sampleRecords(), nil
	}

	const callers = 16
	results := make([]string, callers)
	var wg sync.WaitGroup
	var started sync.WaitGroup
	started.Add(callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			records, err := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
			if assert.NoError(t, err) {
				payload, _ := json.Marshal(records)
				results[i] = string(payload)
			}
		}(i)
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
	for i := 1; i < callers; i++ {
		assert.Equal(t, results[0], results[i])
	}
}

func TestStore_GetOrFetch_AbandonedCallerDoesNotCancelFetch(t *testing.T) {
	store := newTestStore(newMockCache(), newFakeClock())
	release := make(chan struct{})
	var fetchCtxErr atomic.Value
	fetch := func(ctx context.Context) ([]domain.Record, error) {
		<-release
		if ctx.Err() != nil {
			fetchCtxErr.Store(ctx.Err())
		}
		return sampleRecords(), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := store.GetOrFetch(ctx, testKey, time.Hour, fetch)
		done <- err
	}()

	second := make(chan []domain.Record, 1)
	go func() {
		time.Sleep(10 * time.Millisecond)
		records, _ := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
		second <- records
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(release)
	records := <-second
	assert.Len(t, records, 2)
	assert.Nil(t, fetchCtxErr.Load())
}

func TestStore_GetOrFetch_FailureLeavesPriorEntryUntouched(t *testing.T) {
	cache := newMockCache()
	clock := newFakeClock()
	store := newTestStore(cache, clock)

	_, err := store.GetOrFetch(context.Background(), testKey, time.Hour, func(ctx context.Context) ([]domain.Record, error) {
		return sampleRecords(), nil
	})
	require.NoError(t, err)
	before, err := cache.Get(context.Background(), testKey.ID())
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	fetchErr := &coreerrors.TransportError{Op: "fetch", Cause: context.DeadlineExceeded}
	records, err := store.GetOrFetch(context.Background(), testKey, time.Hour, func(ctx context.Context) ([]domain.Record, error) {
		return nil, fetchErr
	})

	assert.Nil(t, records)
	assert.True(t, coreerrors.IsTransport(err))
	after, err := cache.Get(context.Background(), testKey.ID())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_GetOrFetch_FailureCreatesNoEntry(t *testing.T) {
	cache := newMockCache()
	store := newTestStore(cache, newFakeClock())
	var fetches int32
	failing := func(ctx context.Context) ([]domain.Record, error) {
		atomic.AddInt32(&fetches, 1)
		return nil, &coreerrors.HTTPStatusError{StatusCode: 503}
	}

	_, err := store.GetOrFetch(context.Background(), testKey, time.Hour, failing)
	require.Error(t, err)
	_, err = store.GetOrFetch(context.Background(), testKey, time.Hour, failing)
	require.Error(t, err)

	assert.Equal(t, 0, cache.len())
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestStore_GetOrFetch_BackendErrorsDegradeToFetch(t *testing.T) {
	cache := newMockCache()
	cache.GetFunc = func(ctx context.Context, key string) ([]byte, error) {
		return nil, errors.New("redis: connection refused")
	}
	cache.SetFunc = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		return errors.New("redis: connection refused")
	}
	store := newTestStore(cache, newFakeClock())

	records, err := store.GetOrFetch(context.Background(), testKey, time.Hour, func(ctx context.Context) ([]domain.Record, error) {
		return sampleRecords(), nil
	})

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStore_GetOrFetch_EmptyResultIsCached(t *testing.T) {
	store := newTestStore(newMockCache(), newFakeClock())
	var fetches int32
	fetch := func(ctx context.Context) ([]domain.Record, error) {
		atomic.AddInt32(&fetches, 1)
		return nil, nil
	}

	for i := 0; i < 2; i++ {
		records, err := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestStore_Invalidate(t *testing.T) {
	cache := newMockCache()
	store := newTestStore(cache, newFakeClock())
	other := NewKey(testKey.Endpoint, "%24limit=20")
	var fetches int32
	fetch := func(ctx context.Context) ([]domain.Record, error) {
		atomic.AddInt32(&fetches, 1)
		return sampleRecords(), nil
	}

	_, _ = store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
	_, _ = store.GetOrFetch(context.Background(), other, time.Hour, fetch)
	require.Equal(t, 2, cache.len())

	require.NoError(t, store.Invalidate(context.Background(), testKey))
	assert.Equal(t, 1, cache.len())

	require.NoError(t, store.InvalidateAll(context.Background()))
	assert.Equal(t, 0, cache.len())

	_, _ = store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
	assert.Equal(t, int32(3), atomic.LoadInt32(&fetches))
}

func TestStore_InvalidationDetachesRunningFetch(t *testing.T) {
	invalidations := map[string]func(*Store) error{
		"key": func(s *Store) error { return s.Invalidate(context.Background(), testKey) },
		"all": func(s *Store) error { return s.InvalidateAll(context.Background()) },
	}

	for name, invalidate := range invalidations {
		t.Run(name, func(t *testing.T) {
			store := newTestStore(newMockCache(), newFakeClock())
			started := make(chan struct{})
			release := make(chan struct{})
			var fetches int32
			fetch := func(ctx context.Context) ([]domain.Record, error) {
				if atomic.AddInt32(&fetches, 1) == 1 {
					close(started)
					<-release
					return []domain.Record{{"objecte_contracte": "before refresh"}}, nil
				}
				return []domain.Record{{"objecte_contracte": "after refresh"}}, nil
			}

			early := make(chan []domain.Record, 1)
			go func() {
				records, _ := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
				early <- records
			}()
			<-started

			require.NoError(t, invalidate(store))

			fresh, err := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
			require.NoError(t, err)
			assert.Equal(t, "after refresh", fresh[0]["objecte_contracte"])

			close(release)
			assert.Equal(t, "before refresh", (<-early)[0]["objecte_contracte"])

			again, err := store.GetOrFetch(context.Background(), testKey, time.Hour, fetch)
			require.NoError(t, err)
			assert.Equal(t, "after refresh", again[0]["objecte_contracte"])
			assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
		})
	}
}

func TestStore_Get(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(newMockCache(), clock)

	_, ok := store.Get(context.Background(), testKey)
	assert.False(t, ok)

	_, err := store.GetOrFetch(context.Background(), testKey, time.Hour, func(ctx context.Context) ([]domain.Record, error) {
		return sampleRecords(), nil
	})
	require.NoError(t, err)

	entry, ok := store.Get(context.Background(), testKey)
	require.True(t, ok)
	assert.Equal(t, testKey.Canonical(), entry.Key)
	assert.True(t, entry.Expiry.Equal(clock.Now().Add(time.Hour)))
}
