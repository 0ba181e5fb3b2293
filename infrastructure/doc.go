// Package infrastructure holds the concrete backends behind the core
// interfaces.
//
// Snapshot caches (interfaces.Cache), chosen with CACHE_TYPE:
//
//	cache/memory  patrickmn/go-cache, lost on restart
//	cache/redis   go-redis, shared between replicas under a key prefix
//	cache/sqlite  a local database file that survives restarts
//
// The rest:
//
//	http/standard       dataset client with retries, Retry-After and a request throttle
//	logger/structured   logrus with an optional lumberjack-rotated file
//	metrics/prometheus  counters and histograms on a private registry
//
// A snapshot cache stores opaque bytes:
//
//	c := memory.NewMemoryCache()
//	_ = c.Set(ctx, "snapshot:3f2a", payload, time.Hour)
//	payload, err := c.Get(ctx, "snapshot:3f2a") // interfaces.ErrCacheMiss when absent
package infrastructure
