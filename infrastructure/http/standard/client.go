// ABOUTME: Standard HTTP client implementation with retry logic and client-side rate limiting
// ABOUTME: Retries network errors, 5xx and throttled responses, honouring Retry-After from the dataset API

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"contractes-api/core/interfaces"
)

const (
	maxRetries    = 3
	maxRetryAfter = 5 * time.Second
	userAgent     = "ContractesAPI/1.0"
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// requestsPerSecond bounds outgoing requests; zero or less disables the limit.
func NewStandardHTTPClient(timeout time.Duration, requestsPerSecond float64) *StandardHTTPClient {
	c := &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
	if requestsPerSecond > 0 {
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	return c
}

// SetTransport replaces the underlying transport, e.g. with a logging round tripper
func (c *StandardHTTPClient) SetTransport(rt http.RoundTripper) {
	c.client.Transport = rt
}

// Get performs an HTTP GET request.
// Network errors, 5xx and 429 are retried; the last retryable response is
// returned so callers can report its status.
func (c *StandardHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	var (
		resp    *http.Response
		lastErr error
		wait    time.Duration
	)

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
		}
		wait = backoff(attempt)

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			resp = nil
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		if !retryable(resp.StatusCode) || attempt == maxRetries-1 {
			break
		}
		if d, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
			wait = d
		}
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// backoff returns the wait before the next attempt: 100ms, 200ms, ...
func backoff(attempt int) time.Duration {
	return time.Duration(100*(1<<attempt)) * time.Millisecond
}

// retryAfter parses a Retry-After delay in seconds, capped at maxRetryAfter
func retryAfter(v string) (time.Duration, bool) {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0, false
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	return d, true
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
