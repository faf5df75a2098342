package errors

import (
	stdErrors "errors"
	"fmt"
	"time"
)

// DefaultRetryAfter is how long the Naver API asks clients to back off after a 403.
const DefaultRetryAfter = 60 * time.Second

// RateLimitError represents a rate limit error from the search API
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
	}
	return e.Message
}

// NewRateLimitErrorWithRetry creates a RateLimitError carrying a suggested backoff.
func NewRateLimitErrorWithRetry(message string, retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{Message: message, RetryAfter: retryAfter}
}

// IsRateLimitError reports whether err is a RateLimitError (even when wrapped).
func IsRateLimitError(err error) bool {
	var rateErr *RateLimitError
	return stdErrors.As(err, &rateErr)
}
