package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is returned for non-2xx responses other than rate limiting.
type StatusError struct {
	StatusCode int
	Body       string // first bytes of the response body, trimmed
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.StatusCode)
	if text == "" {
		text = "unexpected status"
	}
	if e.Body != "" {
		return fmt.Sprintf("naver: %s (HTTP %d): %s", strings.ToLower(text), e.StatusCode, e.Body)
	}
	return fmt.Sprintf("naver: %s (HTTP %d)", strings.ToLower(text), e.StatusCode)
}

// NewStatusError creates a StatusError for the given code and body excerpt.
func NewStatusError(statusCode int, body string) *StatusError {
	return &StatusError{StatusCode: statusCode, Body: strings.TrimSpace(body)}
}

// IsStatusError checks if error is a StatusError
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return stdErrors.As(err, &statusErr)
}
