package model

import "fmt"

// ValidationError reports untrusted input that could not be parsed into a
// domain value. Input keeps the raw value for diagnostics; Error() leaves it out
// so the message is safe to log.
type ValidationError struct {
	Field  string
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid subscriber %s: %s", e.Field, e.Reason)
}
