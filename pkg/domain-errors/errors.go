// Package domainerrors provides coded errors for the service layer.
//
// Stores return sentinel errors (pkg/platform/sentinel); services translate
// them into coded errors with New or Wrap; the transport layer maps codes to
// HTTP statuses. Codes are stable strings safe to expose in API responses.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for API mapping and logging.
type Code string

const (
	CodeInternal           Code = "internal"
	CodeValidation         Code = "validation"
	CodeInvalidInput       Code = "invalid_input"
	CodeBadRequest         Code = "bad_request"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeUnavailable        Code = "unavailable"
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a coded error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error with the given message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message, preserving the cause chain.
// Returns nil if err is nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is is an alias for HasCode, kept for call-site readability in tests.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of the outermost coded error in err's chain,
// or CodeInternal when err carries no code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
