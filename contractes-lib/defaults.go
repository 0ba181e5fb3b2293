// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for creating default service implementations

package contractes

import (
	"time"

	"contractes-api/core/interfaces"
	"contractes-api/core/source"
	"contractes-api/infrastructure/cache/memory"
	httpInfra "contractes-api/infrastructure/http/standard"
	"contractes-api/infrastructure/logger/structured"
)

// DefaultRequestsPerSecond throttles the default HTTP client
const DefaultRequestsPerSecond = 5

// DefaultHTTPClient creates a default HTTP client with sensible timeouts
func DefaultHTTPClient(timeout time.Duration) interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(timeout, DefaultRequestsPerSecond)
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultLogger creates a logger that writes warnings and errors to stdout
func DefaultLogger() interfaces.Logger {
	logger, err := structured.New(structured.Options{Level: "warn", Format: "text"})
	if err != nil {
		return interfaces.NopLogger{}
	}
	return logger
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Logger:   DefaultLogger(),
		Endpoint: source.DefaultEndpoint,
		Timeout:  source.DefaultTimeout,
	}
}
