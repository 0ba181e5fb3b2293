// ABOUTME: Remote source adapter fetching contract rows from a Socrata SODA endpoint
// ABOUTME: Maps every failure to a typed error and never returns partial results

package source

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/sony/gobreaker"

	"contractes-api/core/domain"
	"contractes-api/core/errors"
	"contractes-api/core/interfaces"
)

const (
	// DefaultEndpoint is the Catalan public contracts dataset
	DefaultEndpoint = "https://analisi.transparenciacatalunya.cat/resource/jx2x-848j.json"

	// DefaultTimeout bounds a single fetch
	DefaultTimeout = 15 * time.Second

	appTokenHeader = "X-App-Token"
	maxErrorBody   = 512
)

// Options configures a Client
type Options struct {
	// Endpoint is the resource URL without query string
	Endpoint string

	// AppToken is sent as X-App-Token when set
	AppToken string

	// Timeout bounds each fetch; zero uses DefaultTimeout
	Timeout time.Duration

	// BreakerFailures is the number of consecutive failures that opens the breaker; zero uses 5
	BreakerFailures uint32

	// BreakerCooldown is how long the breaker stays open; zero uses 30s
	BreakerCooldown time.Duration
}

// Client fetches dataset pages
type Client struct {
	endpoint string
	appToken string
	timeout  time.Duration
	http     interfaces.HTTPClient
	logger   interfaces.Logger
	metrics  interfaces.Metrics
	breaker  *gobreaker.CircuitBreaker
}

// NewClient creates a source client over the injected HTTP client
func NewClient(deps interfaces.Dependencies, opts Options) *Client {
	deps = deps.WithDefaults()
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = 30 * time.Second
	}

	c := &Client{
		endpoint: opts.Endpoint,
		appToken: opts.AppToken,
		timeout:  opts.Timeout,
		http:     deps.HTTPClient,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}

	failures := opts.BreakerFailures
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dataset-source",
		MaxRequests: 1,
		Timeout:     opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("Circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	return c
}

// Endpoint returns the resource URL the client queries
func (c *Client) Endpoint() string {
	return c.endpoint
}

// URL returns the full request URL for the given parameters
func (c *Client) URL(p Params) string {
	if q := p.Encode(); q != "" {
		return c.endpoint + "?" + q
	}
	return c.endpoint
}

// Fetch requests one page of rows
func (c *Client) Fetch(ctx context.Context, p Params) ([]domain.Record, error) {
	start := time.Now()
	requestURL := c.URL(p)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, requestURL)
	})

	outcome := "success"
	if err != nil {
		outcome = "error"
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
			err = &errors.TransportError{Op: "fetch", Cause: err}
		}
	}
	c.metrics.IncCounter("source_fetch_total", map[string]string{"outcome": outcome})
	c.metrics.ObserveDuration("source_fetch_duration", time.Since(start), map[string]string{"outcome": outcome})

	if err != nil {
		c.logger.Error("Dataset fetch failed", map[string]interface{}{
			"url":   requestURL,
			"error": err.Error(),
		})
		return nil, err
	}

	records := result.([]domain.Record)
	c.logger.Debug("Dataset fetch completed", map[string]interface{}{
		"url":      requestURL,
		"records":  len(records),
		"duration": time.Since(start).String(),
	})
	return records, nil
}

func (c *Client) fetch(ctx context.Context, requestURL string) ([]domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	headers := map[string]string{"Accept": "application/json"}
	if c.appToken != "" {
		headers[appTokenHeader] = c.appToken
	}

	resp, err := c.http.Get(ctx, requestURL, headers)
	if err != nil {
		return nil, &errors.TransportError{Op: "fetch", Cause: err}
	}
	body := resp.Body()
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &errors.TransportError{Op: "read", Cause: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		snippet := string(data)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &errors.HTTPStatusError{StatusCode: resp.StatusCode(), Body: snippet}
	}

	return decode(data)
}

// decode parses a JSON array of objects, keeping numbers as json.Number
func decode(data []byte) ([]domain.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &errors.TransportError{Op: "decode", Cause: fmt.Errorf("response body is not a JSON array")}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, &errors.TransportError{Op: "decode", Cause: err}
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		if row == nil {
			return nil, &errors.TransportError{Op: "decode", Cause: fmt.Errorf("row %d is not an object", i)}
		}
		records[i] = domain.Record(row)
	}
	return records, nil
}

// countsAsSuccess keeps client errors and caller cancellations from tripping the breaker
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if code := errors.StatusCode(err); code >= 400 && code < 500 {
		return true
	}
	return stderrors.Is(err, context.Canceled)
}
