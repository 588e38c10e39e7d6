// File: internal/services/ai/errors.go
package ai

import "fmt"

type ErrorType string

const (
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeTransport ErrorType = "TRANSPORT"
	ErrTypeShape     ErrorType = "SHAPE"
)

type AIError struct {
	Type      ErrorType
	Code      int
	Message   string
	Model     string
	Operation string
	Cause     error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewTransportError(operation, model, msg string, cause error) *AIError {
	return &AIError{Type: ErrTypeTransport, Operation: operation, Model: model, Message: msg, Cause: cause}
}

// NewShapeError marks a response that arrived but carried no usable reply.
func NewShapeError(operation, model, msg string) *AIError {
	return &AIError{Type: ErrTypeShape, Operation: operation, Model: model, Message: msg}
}

// IsShapeError reports whether err is an AIError of type SHAPE.
func IsShapeError(err error) bool {
	aiErr, ok := err.(*AIError)
	return ok && aiErr.Type == ErrTypeShape
}
