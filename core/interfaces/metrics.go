package interfaces

import "time"

// Metrics records engine counters and timings.
// Implementations must be safe for concurrent use.
type Metrics interface {
	// IncCounter increments a named counter
	IncCounter(name string, labels map[string]string)

	// ObserveDuration records how long an operation took
	ObserveDuration(name string, d time.Duration, labels map[string]string)
}

// NopMetrics discards everything
type NopMetrics struct{}

func (NopMetrics) IncCounter(string, map[string]string)                     {}
func (NopMetrics) ObserveDuration(string, time.Duration, map[string]string) {}
