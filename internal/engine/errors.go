// internal/engine/errors.go
package engine

import "fmt"

// InputError marks a request that is malformed or invalid for the current
// state: a bad id, a missing field, or an operation attempted in the wrong
// session state. The transport layer maps it to a 400.
type InputError struct {
	msg string
}

// NewInputError builds an InputError with a formatted message.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

func (e *InputError) Error() string { return e.msg }

// AccessError marks an ownership or authorization failure. The transport
// layer maps it to a 403.
type AccessError struct {
	msg string
}

// NewAccessError builds an AccessError with a formatted message.
func NewAccessError(format string, args ...any) *AccessError {
	return &AccessError{msg: fmt.Sprintf(format, args...)}
}

func (e *AccessError) Error() string { return e.msg }
