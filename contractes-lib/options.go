// ABOUTME: Configuration options for the Contractes library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package contractes

import (
	"time"

	coreconfig "contractes-api/core/config"
	"contractes-api/core/domain"
	"contractes-api/core/interfaces"
	"contractes-api/infrastructure/cache/sqlite"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// Config holds the configuration for the client
type Config struct {
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger

	// Endpoint is the dataset resource URL
	Endpoint string

	// AppToken is the optional Socrata application token
	AppToken string

	// Timeout bounds each dataset request
	Timeout time.Duration

	// AliasesFile is an optional YAML overlay for the schema alias table
	AliasesFile string

	// Engine tunes row caps, TTLs and ranking
	Engine []coreconfig.EngineOption

	closers []func() error
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithSQLiteCache stores snapshots in a SQLite file that survives restarts
func WithSQLiteCache(path string) Option {
	return func(c *Config) error {
		cache, err := sqlite.NewSQLiteCache(path, c.Logger)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "cannot open SQLite cache").
				WithCause(err).
				WithContext("path", path)
		}
		c.Cache = cache
		c.closers = append(c.closers, cache.Close)
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return WithLogger(interfaces.NopLogger{})
}

// WithEndpoint points the client at another dataset resource
func WithEndpoint(endpoint string) Option {
	return func(c *Config) error {
		if endpoint == "" {
			return NewError(ErrorTypeConfiguration, "endpoint cannot be empty")
		}
		c.Endpoint = endpoint
		return nil
	}
}

// WithAppToken sets the Socrata application token
func WithAppToken(token string) Option {
	return func(c *Config) error {
		c.AppToken = token
		return nil
	}
}

// WithTimeout bounds each dataset request
func WithTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return NewError(ErrorTypeConfiguration, "timeout must be positive")
		}
		c.Timeout = d
		return nil
	}
}

// WithAliasesFile loads extra column aliases from a YAML file
func WithAliasesFile(path string) Option {
	return func(c *Config) error {
		c.AliasesFile = path
		return nil
	}
}

// WithRowCap sets the number of recent contracts kept in the snapshot
func WithRowCap(n int) Option {
	return withEngine(coreconfig.WithRowCap(n))
}

// WithTTLs sets how long snapshots and targeted searches stay cached
func WithTTLs(snapshot, search time.Duration) Option {
	return withEngine(coreconfig.WithTTLs(snapshot, search))
}

// WithTopN sets the default ranking size
func WithTopN(n int) Option {
	return withEngine(coreconfig.WithTopN(n))
}

// WithoutCache fetches on every call
func WithoutCache() Option {
	return withEngine(coreconfig.WithoutCache())
}

// WithoutDelegatedSearch disables remote full-text search
func WithoutDelegatedSearch() Option {
	return withEngine(coreconfig.WithDelegatedSearch(false))
}

func withEngine(opt coreconfig.EngineOption) Option {
	return func(c *Config) error {
		c.Engine = append(c.Engine, opt)
		return nil
	}
}

// SearchOption is a functional option for a single search
type SearchOption func(*searchOptions) error

type searchOptions struct {
	scope    *domain.FieldScope
	strategy domain.Strategy
	sort     domain.SortOrder
}

// InScope restricts a snapshot search to all, company, title or buyer fields
func InScope(name string) SearchOption {
	return func(o *searchOptions) error {
		scope, ok := domain.ParseScope(name)
		if !ok {
			return NewError(ErrorTypeValidation, "unknown scope").WithContext("scope", name)
		}
		o.scope = &scope
		return nil
	}
}

// Delegated forwards the query to the remote full-text search
func Delegated() SearchOption {
	return func(o *searchOptions) error {
		o.strategy = domain.StrategyDelegated
		return nil
	}
}

// SortedBy orders results by date_desc or amount_desc
func SortedBy(order domain.SortOrder) SearchOption {
	return func(o *searchOptions) error {
		o.sort = order
		return nil
	}
}
