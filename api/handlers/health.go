// ABOUTME: Health check handler for the Huma API
// ABOUTME: Reports cache backend reachability, cache statistics and active feature flags

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"contractes-api/api/dto/responses"
	"contractes-api/pkg/featureflags"
)

// Pinger is implemented by cache backends that can report reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsReporter is implemented by cache backends that expose entry counts
type StatsReporter interface {
	Stats(ctx context.Context) (map[string]interface{}, error)
}

// HealthHandler handles health checks
type HealthHandler struct {
	cacheType string
	pinger    Pinger
	stats     StatsReporter
	flags     featureflags.Manager
}

// NewHealthHandler creates a health handler for the given cache backend.
// The backend is checked for the optional Pinger and StatsReporter interfaces.
func NewHealthHandler(cacheType string, backend interface{}, flags featureflags.Manager) *HealthHandler {
	if flags == nil {
		flags = featureflags.NewStaticManager(nil)
	}
	h := &HealthHandler{cacheType: cacheType, flags: flags}
	if p, ok := backend.(Pinger); ok {
		h.pinger = p
	}
	if s, ok := backend.(StatsReporter); ok {
		h.stats = s
	}
	return h
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	resp := responses.HealthResponse{
		Status: "ok",
		Cache:  h.cacheType,
		Flags:  make(map[string]bool),
	}
	for flag, enabled := range h.flags.GetAllFlags() {
		resp.Flags[string(flag)] = enabled
	}

	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			resp.Status = "degraded"
		}
	}
	if h.stats != nil {
		if stats, err := h.stats.Stats(ctx); err == nil {
			resp.CacheStats = stats
		}
	}
	return &HealthOutput{Body: resp}, nil
}
