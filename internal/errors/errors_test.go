package errors

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/url"
	"testing"
	"time"
)

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitErrorWithRetry("slow down", 0)

	if err.Error() != "slow down" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "slow down")
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}

	wrapped := fmt.Errorf("search: %w", err)
	if !IsRateLimitError(wrapped) {
		t.Fatalf("IsRateLimitError returned false for wrapped RateLimitError")
	}
}

func TestRateLimitErrorWithRetry(t *testing.T) {
	err := NewRateLimitErrorWithRetry("too many requests", DefaultRetryAfter)

	expected := "too many requests (retry after 1m0s)"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if err.RetryAfter != time.Minute {
		t.Fatalf("RetryAfter = %v, want 1 minute", err.RetryAfter)
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		body     string
		expected string
	}{
		{
			name:     "with body",
			code:     500,
			body:     "  upstream broke \n",
			expected: "naver: internal server error (HTTP 500): upstream broke",
		},
		{
			name:     "without body",
			code:     400,
			expected: "naver: bad request (HTTP 400)",
		},
		{
			name:     "unknown code",
			code:     599,
			expected: "naver: unexpected status (HTTP 599)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStatusError(tt.code, tt.body)
			if err.Error() != tt.expected {
				t.Fatalf("Error message = %q, want %q", err.Error(), tt.expected)
			}
			if !IsStatusError(err) {
				t.Fatalf("IsStatusError returned false")
			}
			if IsRateLimitError(err) {
				t.Fatalf("IsRateLimitError returned true for StatusError")
			}
		})
	}
}

func TestTransportErrorUnwraps(t *testing.T) {
	inner := &url.Error{Op: "Get", URL: "https://example.test", Err: stdErrors.New("connection refused")}
	err := NewTransportError(inner)

	if !IsTransportError(err) {
		t.Fatalf("IsTransportError returned false")
	}

	var urlErr *url.Error
	if !stdErrors.As(err, &urlErr) {
		t.Fatalf("TransportError should unwrap to *url.Error")
	}
}

func TestDecodeErrorMessages(t *testing.T) {
	syntaxErr := json.Unmarshal([]byte("{"), &struct{}{})
	err := NewDecodeError(syntaxErr)
	if !IsDecodeError(err) {
		t.Fatalf("IsDecodeError returned false")
	}
	if !stdErrors.Is(err, syntaxErr) {
		t.Fatalf("DecodeError should unwrap to the JSON error")
	}

	missing := NewMissingFieldError(3, "title")
	expected := `decode response: item 3 missing field "title"`
	if missing.Error() != expected {
		t.Fatalf("Error message = %q, want %q", missing.Error(), expected)
	}

	typeErr := stdErrors.New("cannot unmarshal number")
	wrongType := NewFieldError(1, "link", typeErr)
	expected = `decode response: item 1 field "link": cannot unmarshal number`
	if wrongType.Error() != expected {
		t.Fatalf("Error message = %q, want %q", wrongType.Error(), expected)
	}
	if !stdErrors.Is(wrongType, typeErr) {
		t.Fatalf("field DecodeError should unwrap to the type error")
	}
}
