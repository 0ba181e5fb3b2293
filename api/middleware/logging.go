// ABOUTME: Request logging and metrics middleware for API endpoints
// ABOUTME: Tags requests with IDs, records route metrics and logs outgoing dataset calls

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contractes-api/core/interfaces"
)

const slowRequestThreshold = 5 * time.Second

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.ResponseWriter.WriteHeader(code)
		rw.written = true
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// requestIDKey is the context key for request ID
type requestIDKey struct{}

// WithRequestID stores a request ID in the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestLoggingMiddleware logs one line per request and records route
// metrics. Server errors log at Error, slow requests at Warn, the rest at
// Info. metrics may be nil.
func RequestLoggingMiddleware(logger interfaces.Logger, metrics interfaces.Metrics) func(http.Handler) http.Handler {
	if metrics == nil {
		metrics = interfaces.NopMetrics{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set("X-Request-ID", requestID)
			r = r.WithContext(WithRequestID(r.Context(), requestID))

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			logger.Debug("Request started", requestFields(r, requestID))

			next.ServeHTTP(wrapped, r)
			duration := time.Since(start)

			fields := requestFields(r, requestID)
			fields["query"] = r.URL.RawQuery
			fields["status"] = wrapped.statusCode
			fields["duration_ms"] = duration.Milliseconds()
			fields["remote_ip"] = extractIP(r)

			switch {
			case wrapped.statusCode >= 500:
				logger.Error("Request failed", fields)
			case duration > slowRequestThreshold:
				logger.Warn("Slow request", fields)
			default:
				logger.Info("Request completed", fields)
			}

			route := routePattern(r)
			labels := map[string]string{
				"route":  route,
				"method": r.Method,
				"status": strconv.Itoa(wrapped.statusCode),
			}
			metrics.IncCounter("http_requests_total", labels)
			metrics.ObserveDuration("http_request_duration", duration, labels)
		})
	}
}

func requestFields(r *http.Request, requestID string) map[string]interface{} {
	return map[string]interface{}{
		"request_id": requestID,
		"method":     r.Method,
		"path":       r.URL.Path,
	}
}

// routePattern returns the matched chi route so metric labels stay bounded
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// LoggingRoundTripper logs dataset calls made on behalf of an API request,
// tagged with that request's ID
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Logger    interfaces.Logger
}

// RoundTrip logs the outcome of one outgoing request
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	start := time.Now()
	resp, err := transport.RoundTrip(req)

	fields := map[string]interface{}{
		"request_id":  RequestID(req.Context()),
		"url":         req.URL.Redacted(),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		t.Logger.Warn("Dataset request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	if resp.StatusCode >= 400 {
		t.Logger.Warn("Dataset request rejected", fields)
	} else {
		t.Logger.Debug("Dataset request completed", fields)
	}
	return resp, nil
}
