package storage

import (
	"errors"
	"fmt"
)

// Error is a storage failure with a category. Err is the driver error,
// passed through untouched.
type Error struct {
	// Code is a machine-readable error code
	Code string

	// Message is a human-readable error message
	Message string

	// Err is the underlying error (if any)
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

const (
	// ErrCodeConnect covers unreachable hosts, rejected credentials and
	// connection-acquire timeouts.
	ErrCodeConnect = "CONNECT_ERROR"

	// ErrCodeQuery covers failures of a statement once a connection is held:
	// constraint violations, transport drops, server-side errors.
	ErrCodeQuery = "QUERY_ERROR"
)

// NewErrorWithCause creates a new Error wrapping an underlying error.
func NewErrorWithCause(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// IsConnectError reports whether err is a connection failure.
func IsConnectError(err error) bool {
	return hasCode(err, ErrCodeConnect)
}

// IsQueryError reports whether err is a statement failure.
func IsQueryError(err error) bool {
	return hasCode(err, ErrCodeQuery)
}

func hasCode(err error, code string) bool {
	var storageErr *Error
	if errors.As(err, &storageErr) {
		return storageErr.Code == code
	}
	return false
}
