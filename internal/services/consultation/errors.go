// File: internal/services/consultation/errors.go
package consultation

import "fmt"

type ErrorType string

const (
	ErrTypeConfig ErrorType = "CONFIG"
)

type ConsultationError struct {
	Type      ErrorType
	Operation string
	Message   string
}

func (e *ConsultationError) Error() string {
	return fmt.Sprintf("consultation %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func NewConfigError(msg string) *ConsultationError {
	return &ConsultationError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}
