package interfaces

// Logger is the structured logger injected into every component.
// Fields are attached as key/value pairs; nil fields are allowed.
//
//	logger.Warn("Ranking unavailable", map[string]interface{}{
//		"error": "schema resolution gap: no column for amount",
//	})
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards all log output
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
