// File: internal/services/provider/errors.go
package provider

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeCall      ErrorType = "CALL_FAILED"
	ErrTypeTimeout   ErrorType = "TIMEOUT"
	ErrTypeEmpty     ErrorType = "EMPTY_RESPONSE"
	ErrTypeExhausted ErrorType = "POOL_EXHAUSTED"
)

type ProviderError struct {
	Type       ErrorType
	ProviderID string
	Operation  string
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s error in %s [%s]: %s (caused by: %v)",
			e.Type, e.Operation, e.ProviderID, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s error in %s [%s]: %s", e.Type, e.Operation, e.ProviderID, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *ProviderError {
	return &ProviderError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewCallError(providerID, msg string, cause error) *ProviderError {
	return &ProviderError{Type: ErrTypeCall, ProviderID: providerID, Operation: "generate", Message: msg, Cause: cause}
}

func NewTimeoutError(providerID string, cause error) *ProviderError {
	return &ProviderError{Type: ErrTypeTimeout, ProviderID: providerID, Operation: "generate", Message: "call exceeded timeout", Cause: cause}
}

func NewExhaustedError(attempts int) *ProviderError {
	return &ProviderError{
		Type:      ErrTypeExhausted,
		Operation: "generate",
		Message:   fmt.Sprintf("no provider served the request after %d attempts", attempts),
	}
}

// IsExhausted reports whether err means every provider failed for one request.
func IsExhausted(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Type == ErrTypeExhausted
}
