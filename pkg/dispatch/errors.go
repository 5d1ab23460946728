package dispatch

import (
	"errors"
	"net/http"

	"github.com/quickwinfinance/duesflow/pkg/validator"
)

// ErrNotConfigured is wrapped by ConfigurationError when no API key was provided.
var ErrNotConfigured = errors.New("email configuration not found, check the environment variables")

// ValidationError reports a request that cannot be sent. The provider is
// never called.
type ValidationError struct {
	Fields  validator.ValidationErrors
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Fields.Error()
}

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// NewValidationError creates a ValidationError with a message and no field details.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ConfigurationError reports that the dispatcher has no provider credentials.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string { return e.Err.Error() }

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) StatusCode() int { return http.StatusInternalServerError }

// ProviderError wraps a failure reported by the email provider, including
// a panic inside the provider call. Its message is the provider's text.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) StatusCode() int { return http.StatusInternalServerError }

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsProviderError(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}

// AsValidationError extracts a ValidationError from err's chain, or nil.
func AsValidationError(err error) *ValidationError {
	var target *ValidationError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

// StatusCode maps a dispatch error to its HTTP status. Unknown errors are 500.
func StatusCode(err error) int {
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) {
		return coded.StatusCode()
	}
	return http.StatusInternalServerError
}
