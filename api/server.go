// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, CORS, request logging and rate limiting

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"contractes-api/api/middleware"
	"contractes-api/core/interfaces"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics
	RateLimit  int           // requests per window, 0 disables limiting
	RateWindow time.Duration // rate limit window

	// MetricsHandler, when set, is mounted at /metrics
	MetricsHandler http.Handler
}

// NewAPI creates a Huma API instance without logging or rate limiting
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS must run first; the API is read-only apart from cache refresh
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "Retry-After"},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger, cfg.Metrics))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	if cfg.MetricsHandler != nil {
		router.Handle("/metrics", cfg.MetricsHandler)
	}

	config := huma.DefaultConfig("Contractes API", "1.0.0")
	config.Info.Description = "Search and rank Catalan public-sector contracts from the open data portal"

	api := humachi.New(router, config)

	// The OpenAPI spec is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs

	return api, router
}
