package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractes-api/api/handlers"
	"contractes-api/core/dataset"
	"contractes-api/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type stubService struct{}

func (stubService) Search(context.Context, dataset.SearchRequest) (*domain.SearchResult, error) {
	return &domain.SearchResult{}, nil
}
func (stubService) SearchCompany(context.Context, string) (*domain.SearchResult, error) {
	return &domain.SearchResult{}, nil
}
func (stubService) TopCompanies(context.Context, int) ([]domain.RankingRow, error) { return nil, nil }
func (stubService) Companies(context.Context) ([]string, error)                    { return nil, nil }
func (stubService) Summary([]domain.NormalizedRecord, domain.LogicalSchema) domain.Summary {
	return domain.Summary{}
}
func (stubService) Refresh(context.Context) error                                   { return nil }

func TestNewAPI_HasCorrectInfo(t *testing.T) {
	api, router := NewAPI()
	require.NotNil(t, router)

	info := api.OpenAPI().Info
	assert.Equal(t, "Contractes API", info.Title)
	assert.Equal(t, "1.0.0", info.Version)
}

func TestAPI_OpenAPIEndpoint(t *testing.T) {
	api, router := NewAPI()
	handlers.NewContractHandler(stubService{}).RegisterRoutes(api)

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/contracts/search")
	assert.Contains(t, rec.Body.String(), "/companies/top")
}

func TestAPI_CORSHeaders(t *testing.T) {
	_, router := NewAPI()

	req := httptest.NewRequest("OPTIONS", "/contracts/search", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIWithMiddleware_RateLimit(t *testing.T) {
	api, router := NewAPIWithMiddleware(APIConfig{
		Logger:     nopLogger{},
		RateLimit:  1,
		RateWindow: time.Minute,
	})
	handlers.NewContractHandler(stubService{}).RegisterRoutes(api)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest("GET", "/companies", nil))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.NotEmpty(t, first.Header().Get("X-Request-ID"))

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest("GET", "/companies", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestAPIWithMiddleware_MetricsHandler(t *testing.T) {
	_, router := NewAPIWithMiddleware(APIConfig{
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("contractes_up 1"))
		}),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, "contractes_up 1", rec.Body.String())

	_, bare := NewAPI()
	rec = httptest.NewRecorder()
	bare.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
