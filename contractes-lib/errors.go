// ABOUTME: Error types and handling for the Contractes library
// ABOUTME: Provides structured errors with context for library operations

package contractes

import (
	"errors"
	"fmt"

	coreerrors "contractes-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeUnavailable indicates the dataset could not be fetched
	ErrorTypeUnavailable ErrorType = "unavailable"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// wrapError classifies an engine error for library callers
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case coreerrors.IsValidation(err):
		return NewError(ErrorTypeValidation, op+" rejected").WithCause(err)
	case coreerrors.IsUnavailable(err):
		e := NewError(ErrorTypeUnavailable, op+" failed: dataset unavailable").WithCause(err)
		if code := coreerrors.StatusCode(err); code != 0 {
			e.WithContext("status", code)
		}
		return e
	}
	return NewError(ErrorTypeInternal, op+" failed").WithCause(err)
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsUnavailableError checks if an error means the dataset could not be reached
func IsUnavailableError(err error) bool {
	return isType(err, ErrorTypeUnavailable)
}
