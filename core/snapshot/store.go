// ABOUTME: Snapshot store caching dataset pages with expiry and coalesced fetches
// ABOUTME: Concurrent misses on one key share a single fetch; failures never touch stored entries

package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"contractes-api/core/domain"
	"contractes-api/core/interfaces"
)

// FetchFunc retrieves fresh records for a key
type FetchFunc func(ctx context.Context) ([]domain.Record, error)

// Entry is the stored form of a cached page
type Entry struct {
	Key       string          `json:"key"`
	Records   []domain.Record `json:"records"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Expiry    time.Time       `json:"expiry"`
}

// Valid reports whether the entry may be served at now
func (e *Entry) Valid(now time.Time) bool {
	return now.Before(e.Expiry)
}

// Store caches dataset pages in a byte-oriented backend
type Store struct {
	cache   interfaces.Cache
	clock   interfaces.Clock
	logger  interfaces.Logger
	metrics interfaces.Metrics

	group singleflight.Group

	// gen advances on every invalidation; flights started under an older
	// generation do not store their rows
	gen atomic.Uint64

	mu       sync.Mutex
	keys     map[string]struct{}
	inflight map[string]int
}

// NewStore creates a snapshot store over deps.Cache
func NewStore(deps interfaces.Dependencies) *Store {
	deps = deps.WithDefaults()
	return &Store{
		cache:   deps.Cache,
		clock:   deps.Clock,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		keys:     make(map[string]struct{}),
		inflight: make(map[string]int),
	}
}

// GetOrFetch returns the valid cached records for key, or runs fetch once
// for all concurrent callers and caches the result for ttl.
func (s *Store) GetOrFetch(ctx context.Context, key Key, ttl time.Duration, fetch FetchFunc) ([]domain.Record, error) {
	id := key.ID()

	if payload, ok := s.lookup(ctx, id); ok {
		s.count("hit")
		return decodeRecords(payload)
	}

	ch := s.group.DoChan(id, func() (interface{}, error) {
		// Another flight may have stored the entry while this one was queued.
		if payload, ok := s.lookup(ctx, id); ok {
			return payload, nil
		}
		s.count("miss")
		gen := s.gen.Load()
		s.begin(id)
		defer s.end(id)
		return s.refresh(context.WithoutCancel(ctx), key, ttl, gen, fetch)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.count("coalesced")
		}
		return decodeRecords(res.Val.([]byte))
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Get returns the valid cached entry for key without fetching
func (s *Store) Get(ctx context.Context, key Key) (*Entry, bool) {
	payload, ok := s.lookup(ctx, key.ID())
	if !ok {
		return nil, false
	}
	entry, err := decodeEntry(payload)
	if err != nil {
		return nil, false
	}
	return entry, true
}

// Invalidate drops the entry for key. A fetch already running for it is
// detached, so the next call starts a new one.
func (s *Store) Invalidate(ctx context.Context, key Key) error {
	id := key.ID()
	s.mu.Lock()
	s.gen.Add(1)
	delete(s.keys, id)
	s.mu.Unlock()
	s.group.Forget(id)
	return s.cache.Delete(ctx, id)
}

// InvalidateAll drops every entry this store has written or is fetching
func (s *Store) InvalidateAll(ctx context.Context) error {
	s.mu.Lock()
	s.gen.Add(1)
	ids := make([]string, 0, len(s.keys)+len(s.inflight))
	for id := range s.keys {
		ids = append(ids, id)
	}
	for id := range s.inflight {
		if _, stored := s.keys[id]; !stored {
			ids = append(ids, id)
		}
	}
	s.keys = make(map[string]struct{})
	s.mu.Unlock()

	for _, id := range ids {
		s.group.Forget(id)
	}

	var errs []error
	for _, id := range ids {
		if err := s.cache.Delete(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	s.logger.Info("Snapshot cache invalidated", map[string]interface{}{
		"entries": len(ids),
	})
	return errors.Join(errs...)
}

func (s *Store) begin(id string) {
	s.mu.Lock()
	s.inflight[id]++
	s.mu.Unlock()
}

func (s *Store) end(id string) {
	s.mu.Lock()
	if s.inflight[id]--; s.inflight[id] <= 0 {
		delete(s.inflight, id)
	}
	s.mu.Unlock()
}

// refresh fetches and stores the entry for key unless an invalidation
// happened after gen was read; the rows are returned either way
func (s *Store) refresh(ctx context.Context, key Key, ttl time.Duration, gen uint64, fetch FetchFunc) ([]byte, error) {
	records, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Record{}
	}

	now := s.clock.Now()
	entry := Entry{
		Key:       key.Canonical(),
		Records:   records,
		FetchedAt: now,
		Expiry:    now.Add(ttl),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	id := key.ID()
	if s.gen.Load() != gen {
		s.logger.Debug("Snapshot invalidated while fetching, not stored", map[string]interface{}{
			"key": entry.Key,
		})
		return payload, nil
	}
	if err := s.cache.Set(ctx, id, payload, ttl); err != nil {
		s.logger.Warn("Failed to store snapshot", map[string]interface{}{
			"key":   entry.Key,
			"error": err.Error(),
		})
		return payload, nil
	}

	s.mu.Lock()
	stale := s.gen.Load() != gen
	if !stale {
		s.keys[id] = struct{}{}
	}
	s.mu.Unlock()
	if stale {
		// Invalidated between the check and the write.
		_ = s.cache.Delete(ctx, id)
		return payload, nil
	}

	s.logger.Debug("Snapshot stored", map[string]interface{}{
		"key":     entry.Key,
		"records": len(records),
		"expiry":  entry.Expiry.Format(time.RFC3339),
	})
	return payload, nil
}

// lookup returns the stored payload for id when present and not expired
func (s *Store) lookup(ctx context.Context, id string) ([]byte, bool) {
	payload, err := s.cache.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.logger.Warn("Snapshot cache read failed", map[string]interface{}{
				"key":   id,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	entry, err := decodeEntry(payload)
	if err != nil {
		s.logger.Warn("Discarding unreadable snapshot", map[string]interface{}{
			"key":   id,
			"error": err.Error(),
		})
		return nil, false
	}
	if !entry.Valid(s.clock.Now()) {
		return nil, false
	}
	return payload, true
}

func (s *Store) count(result string) {
	s.metrics.IncCounter("snapshot_requests_total", map[string]string{"result": result})
}

func decodeEntry(payload []byte) (*Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var entry Entry
	if err := dec.Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// decodeRecords gives every caller its own copy of the cached rows
func decodeRecords(payload []byte) ([]domain.Record, error) {
	entry, err := decodeEntry(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if entry.Records == nil {
		return []domain.Record{}, nil
	}
	return entry.Records, nil
}
