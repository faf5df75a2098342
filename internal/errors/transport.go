package errors

import (
	stdErrors "errors"
	"fmt"
)

// TransportError wraps failures below HTTP: DNS, TLS, timeouts, refused connections.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("naver: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a TransportError.
func NewTransportError(err error) *TransportError {
	return &TransportError{Err: err}
}

// IsTransportError reports whether err is a TransportError (even when wrapped).
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return stdErrors.As(err, &transportErr)
}
