package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput indicates that input validation failed
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingAPIKey indicates that no credential was configured for the provider
	ErrMissingAPIKey = errors.New("api key is required")

	// ErrUnknownProvider indicates that the configured provider name is not supported
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrEmptyResponse indicates that the provider answered without any content
	ErrEmptyResponse = errors.New("empty response from provider")
)

// ProviderError reports a failed call to a completion provider. It is the
// only failure kind a session surfaces: connectivity, authentication,
// malformed payloads and rate limiting all end up here undifferentiated.
type ProviderError struct {
	Provider string
	Err      error
}

// NewProviderError wraps err as a provider failure.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

func (e *ProviderError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("provider failure: %v", e.Err)
	}
	return fmt.Sprintf("%s provider failure: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderFailure reports whether err is, or wraps, a ProviderError.
func IsProviderFailure(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
