// ABOUTME: Bundle of collaborators handed to the engine's services
// ABOUTME: Optional members are filled with no-op or system implementations

package interfaces

// Dependencies is what every engine service is constructed from.
// Cache and HTTPClient are required by the services that use them.
type Dependencies struct {
	Cache      Cache
	HTTPClient HTTPClient
	Logger     Logger

	// Clock defaults to the system clock
	Clock Clock

	// Metrics defaults to NopMetrics
	Metrics Metrics
}

// WithDefaults fills Logger, Clock and Metrics when they are nil
func (d Dependencies) WithDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = NopLogger{}
	}
	if d.Clock == nil {
		d.Clock = SystemClock{}
	}
	if d.Metrics == nil {
		d.Metrics = NopMetrics{}
	}
	return d
}
