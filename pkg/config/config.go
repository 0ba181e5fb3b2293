// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, dataset, cache, search, ranking and logging

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Dataset contains remote source configuration
	Dataset DatasetConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Search contains search defaults
	Search SearchConfig

	// Ranking contains ranking defaults
	Ranking RankingConfig

	// Log contains logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per client per window
	RateLimit int

	// RateWindow is the rate limiting window
	RateWindow time.Duration
}

// DatasetConfig holds remote source configuration
type DatasetConfig struct {
	// Endpoint is the Socrata resource URL
	Endpoint string

	// AppToken is sent as X-App-Token when set
	AppToken string

	// RowCap is the bulk snapshot size
	RowCap int

	// SearchRowCap caps targeted and delegated search results
	SearchRowCap int

	// Timeout bounds each remote call
	Timeout time.Duration

	// OrderField orders the first bulk fetch
	OrderField string

	// RequestsPerSecond throttles outbound calls
	RequestsPerSecond float64

	// AliasesFile is an optional YAML overlay for the schema alias table
	AliasesFile string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// SnapshotTTL is the lifetime of bulk snapshots
	SnapshotTTL time.Duration

	// SearchTTL is the lifetime of targeted search results
	SearchTTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key this service writes
	KeyPrefix string
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// SearchConfig holds search defaults
type SearchConfig struct {
	// DefaultScope is the scope name used when a request names none
	DefaultScope string
}

// RankingConfig holds ranking defaults
type RankingConfig struct {
	// TopN is the default ranking size
	TopN int

	// LabelWidth is the display width labels are truncated to
	LabelWidth int
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is json or text
	Format string

	// File optionally mirrors logs into a rotated file
	File string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:       getEnvOrDefault("PORT", "8000"),
			RateLimit:  getEnvAsIntOrDefault("RATE_LIMIT", 60),
			RateWindow: getEnvAsSecondsOrDefault("RATE_WINDOW_SECONDS", 60),
		},
		Dataset: DatasetConfig{
			Endpoint:          getEnvOrDefault("DATASET_ENDPOINT", "https://analisi.transparenciacatalunya.cat/resource/jx2x-848j.json"),
			AppToken:          getEnvOrDefault("DATASET_APP_TOKEN", ""),
			RowCap:            getEnvAsIntOrDefault("DATASET_ROW_CAP", 3000),
			SearchRowCap:      getEnvAsIntOrDefault("DATASET_SEARCH_ROW_CAP", 100),
			Timeout:           getEnvAsSecondsOrDefault("DATASET_TIMEOUT_SECONDS", 15),
			OrderField:        getEnvOrDefault("DATASET_ORDER_FIELD", "data_formalitzaci_del_contracte"),
			RequestsPerSecond: getEnvAsFloatOrDefault("DATASET_REQUESTS_PER_SECOND", 5),
			AliasesFile:       getEnvOrDefault("SCHEMA_ALIASES_FILE", ""),
		},
		Cache: CacheConfig{
			Type:        strings.ToLower(getEnvOrDefault("CACHE_TYPE", "memory")),
			SnapshotTTL: getEnvAsSecondsOrDefault("SNAPSHOT_TTL_SECONDS", 3600),
			SearchTTL:   getEnvAsSecondsOrDefault("SEARCH_TTL_SECONDS", 600),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "contractes:"),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "contractes-cache.db"),
			},
		},
		Search: SearchConfig{
			DefaultScope: strings.ToLower(getEnvOrDefault("SEARCH_DEFAULT_SCOPE", "all")),
		},
		Ranking: RankingConfig{
			TopN:       getEnvAsIntOrDefault("RANKING_TOP_N", 10),
			LabelWidth: getEnvAsIntOrDefault("RANKING_LABEL_WIDTH", 60),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsSecondsOrDefault reads a whole number of seconds as a duration
func getEnvAsSecondsOrDefault(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsIntOrDefault(key, defaultSeconds)) * time.Second
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.New("rate limit must be at least 1 request")
	}

	if c.Server.RateWindow < time.Second {
		return errors.New("rate window must be at least 1 second")
	}

	if !strings.HasPrefix(c.Dataset.Endpoint, "http://") && !strings.HasPrefix(c.Dataset.Endpoint, "https://") {
		return errors.New("dataset endpoint must be an http(s) URL")
	}

	if c.Dataset.RowCap < 1 || c.Dataset.SearchRowCap < 1 {
		return errors.New("row caps must be at least 1")
	}

	if c.Dataset.Timeout < time.Second {
		return errors.New("dataset timeout must be at least 1 second")
	}

	if c.Dataset.RequestsPerSecond <= 0 {
		return errors.New("requests per second must be positive")
	}

	if c.Cache.SnapshotTTL < time.Second || c.Cache.SearchTTL < time.Second {
		return errors.New("cache TTLs must be at least 1 second")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	switch c.Search.DefaultScope {
	case "all", "company", "title", "buyer":
	default:
		return fmt.Errorf("unknown default search scope %q", c.Search.DefaultScope)
	}

	if c.Ranking.TopN < 1 {
		return errors.New("ranking top-n must be at least 1")
	}

	if c.Ranking.LabelWidth < 4 {
		return errors.New("ranking label width must be at least 4")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return errors.New("log format must be 'json' or 'text'")
	}

	return nil
}
