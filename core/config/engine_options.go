// ABOUTME: Engine configuration for service-level control of fetch sizes, TTLs and defaults
// ABOUTME: Provides configuration options independent of HTTP request structures

package config

import (
	"time"

	"contractes-api/core/domain"
)

// EngineConfig controls how the dataset engine fetches, caches and ranks
type EngineConfig struct {
	// RowCap is the number of rows in the bulk recent snapshot
	RowCap int

	// SearchRowCap caps rows returned by targeted and delegated searches
	SearchRowCap int

	// SnapshotTTL is how long the bulk snapshot and company directory stay cached
	SnapshotTTL time.Duration

	// SearchTTL is how long targeted search results stay cached
	SearchTTL time.Duration

	// OrderField orders the bulk snapshot until the dataset rejects it
	OrderField string

	// DefaultScope is used when a search names no scope
	DefaultScope domain.FieldScope

	// TopN is the ranking size used when callers pass n <= 0
	TopN int

	// LabelWidth is the display width ranking labels are truncated to
	LabelWidth int

	// CacheEnabled routes fetches through the snapshot cache
	CacheEnabled bool

	// DelegatedSearch allows the remote full-text strategy
	DelegatedSearch bool
}

// DefaultEngineConfig returns the default configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		RowCap:          3000,
		SearchRowCap:    100,
		SnapshotTTL:     time.Hour,
		SearchTTL:       10 * time.Minute,
		OrderField:      "data_formalitzaci_del_contracte",
		DefaultScope:    domain.ScopeAll,
		TopN:            10,
		LabelWidth:      60,
		CacheEnabled:    true,
		DelegatedSearch: true,
	}
}

// EngineOption is a functional option for configuring the engine
type EngineOption func(*EngineConfig)

// WithRowCap sets the bulk snapshot size
func WithRowCap(n int) EngineOption {
	return func(c *EngineConfig) {
		if n > 0 {
			c.RowCap = n
		}
	}
}

// WithSearchRowCap sets the targeted search size
func WithSearchRowCap(n int) EngineOption {
	return func(c *EngineConfig) {
		if n > 0 {
			c.SearchRowCap = n
		}
	}
}

// WithTTLs sets the bulk and targeted cache lifetimes
func WithTTLs(snapshot, search time.Duration) EngineOption {
	return func(c *EngineConfig) {
		if snapshot > 0 {
			c.SnapshotTTL = snapshot
		}
		if search > 0 {
			c.SearchTTL = search
		}
	}
}

// WithOrderField sets the initial bulk ordering column
func WithOrderField(field string) EngineOption {
	return func(c *EngineConfig) {
		if field != "" {
			c.OrderField = field
		}
	}
}

// WithDefaultScope sets the scope used when none is requested
func WithDefaultScope(scope domain.FieldScope) EngineOption {
	return func(c *EngineConfig) {
		c.DefaultScope = scope
	}
}

// WithTopN sets the default ranking size
func WithTopN(n int) EngineOption {
	return func(c *EngineConfig) {
		if n > 0 {
			c.TopN = n
		}
	}
}

// WithLabelWidth sets the ranking label width
func WithLabelWidth(width int) EngineOption {
	return func(c *EngineConfig) {
		if width > 0 {
			c.LabelWidth = width
		}
	}
}

// WithCache enables or disables the snapshot cache
func WithCache(enabled bool) EngineOption {
	return func(c *EngineConfig) {
		c.CacheEnabled = enabled
	}
}

// WithoutCache disables the snapshot cache
func WithoutCache() EngineOption {
	return WithCache(false)
}

// WithDelegatedSearch enables or disables the remote full-text strategy
func WithDelegatedSearch(enabled bool) EngineOption {
	return func(c *EngineConfig) {
		c.DelegatedSearch = enabled
	}
}

// NewEngineConfig creates a new engine configuration with the given options
func NewEngineConfig(opts ...EngineOption) EngineConfig {
	config := DefaultEngineConfig()

	for _, opt := range opts {
		opt(&config)
	}

	return config
}
