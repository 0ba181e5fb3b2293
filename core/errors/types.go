// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates transport, HTTP status, schema gaps and recoverable parse warnings

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// TransportError represents a failure to obtain a usable response:
// connection errors, timeouts, unreadable or unparsable bodies.
type TransportError struct {
	Op    string
	Cause error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("transport error during %s", e.Op)
	}
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// HTTPStatusError represents a non-2xx response from the remote source
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote source returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote source returned status %d: %s", e.StatusCode, e.Body)
}

// SchemaResolutionGap reports logical roles a feature needed but the batch lacked.
// It degrades the dependent feature; it never aborts the pipeline.
type SchemaResolutionGap struct {
	Roles []string
}

// Error implements the error interface
func (e *SchemaResolutionGap) Error() string {
	return fmt.Sprintf("schema resolution gap: no column for %s", strings.Join(e.Roles, ", "))
}

// ParseWarning describes a field value that could not be normalized and was
// replaced by a safe default. It is attached to records, never returned.
type ParseWarning struct {
	Field  string `json:"field"`
	Role   string `json:"role"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// String formats the warning for logs
func (w ParseWarning) String() string {
	return fmt.Sprintf("%s (%s): %s %q", w.Field, w.Role, w.Reason, w.Raw)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsTransport checks if an error is a TransportError
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsHTTPStatus checks if an error is an HTTPStatusError
func IsHTTPStatus(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr)
}

// IsSchemaGap checks if an error is a SchemaResolutionGap
func IsSchemaGap(err error) bool {
	var gap *SchemaResolutionGap
	return errors.As(err, &gap)
}

// IsUnavailable reports whether the error means the dataset could not be fetched
func IsUnavailable(err error) bool {
	return IsTransport(err) || IsHTTPStatus(err)
}

// StatusCode returns the remote status code carried by err, or 0
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
