package source

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"contractes-api/core/interfaces"
)

type mockHTTPClient struct {
	GetFunc func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, url, headers)
	}
	return &mockResponse{statusCode: 200, body: "[]"}, nil
}

type mockResponse struct {
	statusCode int
	body       string
	bodyErr    error
}

func (r *mockResponse) StatusCode() int { return r.statusCode }

func (r *mockResponse) Body() io.ReadCloser {
	if r.bodyErr != nil {
		return io.NopCloser(&failingReader{err: r.bodyErr})
	}
	return io.NopCloser(strings.NewReader(r.body))
}

func (r *mockResponse) Header(string) string { return "" }

type failingReader struct{ err error }

func (f *failingReader) Read([]byte) (int, error) { return 0, f.err }

type recordingMetrics struct {
	mu       sync.Mutex
	counters map[string]int
}

func (m *recordingMetrics) IncCounter(name string, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int)
	}
	m.counters[name+"/"+labels["outcome"]]++
}

func (m *recordingMetrics) ObserveDuration(string, time.Duration, map[string]string) {}
