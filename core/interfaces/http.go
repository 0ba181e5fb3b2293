package interfaces

import (
	"context"
	"io"
)

// HTTPClient performs the outbound GETs the source adapter issues against
// the dataset endpoint. Implementations own retries, throttling and the
// transport; callers own per-request deadlines through ctx.
type HTTPClient interface {
	// Get requests url with the extra headers (app token, Accept).
	// A non-2xx status is returned as a Response, not as an error.
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// Response is the minimal view of an HTTP response the engine needs
type Response interface {
	StatusCode() int

	// Body must be closed by the caller
	Body() io.ReadCloser

	// Header looks up a header case-insensitively; "" when absent
	Header(key string) string
}
