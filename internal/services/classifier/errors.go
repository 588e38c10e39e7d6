// File: internal/services/classifier/errors.go
package classifier

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeTransport ErrorType = "TRANSPORT" // network failure or unparsable response
	ErrTypeUpstream  ErrorType = "UPSTREAM"  // classifier answered with an {"error": ...} payload
)

type Error struct {
	Type    ErrorType
	Code    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("classifier %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("classifier %s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UpstreamMessage returns the classifier's own error text, if it sent one.
func UpstreamMessage(err error) (string, bool) {
	var cErr *Error
	if errors.As(err, &cErr) && cErr.Type == ErrTypeUpstream && cErr.Message != "" {
		return cErr.Message, true
	}
	return "", false
}
