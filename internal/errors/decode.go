package errors

import (
	stdErrors "errors"
	"fmt"
)

// DecodeError is returned when a response body is not a valid search result.
// Field names the offending item field when a required value was missing.
type DecodeError struct {
	Field string
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("decode response: item %d field %q: %v", e.Index, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("decode response: item %d missing field %q", e.Index, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("decode response: %v", e.Err)
	default:
		return "decode response"
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError wraps a JSON syntax or type error.
func NewDecodeError(err error) *DecodeError {
	return &DecodeError{Err: err}
}

// NewMissingFieldError reports a required item field that was absent.
func NewMissingFieldError(index int, field string) *DecodeError {
	return &DecodeError{Index: index, Field: field}
}

// NewFieldError reports an item field whose value had the wrong JSON type.
func NewFieldError(index int, field string, err error) *DecodeError {
	return &DecodeError{Index: index, Field: field, Err: err}
}

// IsDecodeError checks if error is a DecodeError
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return stdErrors.As(err, &decodeErr)
}
