// ABOUTME: Prometheus implementation of the engine metrics interface
// ABOUTME: Registers counter and histogram vectors on first use and serves them over HTTP

package prometheus

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contractes"

// Metrics implements interfaces.Metrics with a private registry.
// The label names of a metric are fixed by its first observation;
// later observations missing a label report it as empty.
type Metrics struct {
	registry *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]counterEntry
	histograms map[string]histogramEntry
}

type counterEntry struct {
	vec   *prometheus.CounterVec
	names []string
}

type histogramEntry struct {
	vec   *prometheus.HistogramVec
	names []string
}

// New creates a metrics sink with Go runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{
		registry:   reg,
		counters:   make(map[string]counterEntry),
		histograms: make(map[string]histogramEntry),
	}
}

// IncCounter increments a named counter
func (m *Metrics) IncCounter(name string, labels map[string]string) {
	m.mu.Lock()
	e, ok := m.counters[name]
	if !ok {
		e.names = labelNames(labels)
		e.vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      "Count of " + name,
		}, e.names)
		if err := m.registry.Register(e.vec); err != nil {
			m.mu.Unlock()
			return
		}
		m.counters[name] = e
	}
	m.mu.Unlock()

	if c, err := e.vec.GetMetricWith(fill(labels, e.names)); err == nil {
		c.Inc()
	}
}

// ObserveDuration records a duration in seconds
func (m *Metrics) ObserveDuration(name string, d time.Duration, labels map[string]string) {
	m.mu.Lock()
	e, ok := m.histograms[name]
	if !ok {
		e.names = labelNames(labels)
		e.vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name + "_seconds",
			Help:      "Duration of " + name,
			Buckets:   prometheus.DefBuckets,
		}, e.names)
		if err := m.registry.Register(e.vec); err != nil {
			m.mu.Unlock()
			return
		}
		m.histograms[name] = e
	}
	m.mu.Unlock()

	if h, err := e.vec.GetMetricWith(fill(labels, e.names)); err == nil {
		h.Observe(d.Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for k := range labels {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// fill restricts labels to the vector's names, defaulting absent ones to empty
func fill(labels map[string]string, names []string) prometheus.Labels {
	out := make(prometheus.Labels, len(names))
	for _, n := range names {
		out[n] = labels[n]
	}
	return out
}
