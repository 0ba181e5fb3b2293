// ABOUTME: Feature flags that switch engine and API capabilities on or off
// ABOUTME: Flags come from FEATURE_* environment variables or a fixed map, with runtime overrides

package featureflags

import (
	"context"
	"os"
	"strings"
	"sync"
)

// FeatureFlag names a switchable capability
type FeatureFlag string

const (
	// DelegatedSearch allows forwarding queries to the remote full-text search
	DelegatedSearch FeatureFlag = "delegated_search"

	// CacheEnabled enables snapshot caching
	CacheEnabled FeatureFlag = "cache_enabled"

	// MetricsEnabled exposes /metrics
	MetricsEnabled FeatureFlag = "metrics_enabled"

	// RateLimitEnabled enables per-client rate limiting
	RateLimitEnabled FeatureFlag = "rate_limit_enabled"
)

var defaults = map[FeatureFlag]bool{
	DelegatedSearch:  true,
	CacheEnabled:     true,
	MetricsEnabled:   true,
	RateLimitEnabled: true,
}

// All returns every defined flag
func All() []FeatureFlag {
	return []FeatureFlag{DelegatedSearch, CacheEnabled, MetricsEnabled, RateLimitEnabled}
}

// Manager answers flag lookups
type Manager interface {
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// SetEnabled overrides a flag for the life of the manager
	SetEnabled(flag FeatureFlag, enabled bool)

	// GetAllFlags returns a copy of the current flag states
	GetAllFlags() map[FeatureFlag]bool
}

// flagSet is a concurrency-safe flag map shared by both managers
type flagSet struct {
	mu    sync.RWMutex
	state map[FeatureFlag]bool
}

func copyFlags(src map[FeatureFlag]bool) map[FeatureFlag]bool {
	out := make(map[FeatureFlag]bool, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func (s *flagSet) lookup(flag FeatureFlag) (enabled, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enabled, ok = s.state[flag]
	return enabled, ok
}

// SetEnabled overrides a flag
func (s *flagSet) SetEnabled(flag FeatureFlag, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[flag] = enabled
}

func (s *flagSet) snapshot() map[FeatureFlag]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFlags(s.state)
}

// parseFlag accepts true/1/enabled as on; any other non-empty value is off
func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "enabled":
		return true
	}
	return false
}

// EnvManager reads <prefix><FLAG> variables on every lookup. Overrides set
// with SetEnabled win over the environment, and unset variables fall back to
// the flag's default.
type EnvManager struct {
	flagSet
	prefix string
}

// NewEnvManager creates an environment-backed manager; prefix defaults to FEATURE_
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{flagSet: flagSet{state: copyFlags(nil)}, prefix: prefix}
}

// IsEnabled checks overrides, then the environment, then defaults
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	if enabled, ok := m.lookup(flag); ok {
		return enabled
	}
	if value, ok := os.LookupEnv(m.prefix + strings.ToUpper(string(flag))); ok && value != "" {
		return parseFlag(value)
	}
	return defaults[flag]
}

// GetAllFlags resolves every defined flag
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool, len(defaults))
	for _, f := range All() {
		flags[f] = m.IsEnabled(ctx, f)
	}
	return flags
}

// StaticManager serves a fixed map; missing flags are disabled
type StaticManager struct {
	flagSet
}

// NewStaticManager copies flags, so later changes to the map are not seen
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	return &StaticManager{flagSet: flagSet{state: copyFlags(flags)}}
}

// IsEnabled reports the stored state
func (m *StaticManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	enabled, _ := m.lookup(flag)
	return enabled
}

// GetAllFlags returns a copy of the stored states
func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	return m.snapshot()
}
