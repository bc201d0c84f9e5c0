// Package errors provides coded error values for mapskeleton.
//
// Parsers and loaders return *Error values so callers can tell a malformed
// coordinate from an unreadable resource without matching on strings:
//
//	err := errors.New(errors.ErrCodeInvalidNumber, "point %d: %q", i, field)
//	if errors.Is(err, errors.ErrCodeInvalidNumber) {
//	    // fall back
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// Source data errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidNumber Code = "INVALID_NUMBER"
	ErrCodeEmptyGroup    Code = "EMPTY_GROUP"
	ErrCodeDegenerate    Code = "DEGENERATE_GEOMETRY"

	// Resource errors
	ErrCodeUnavailable Code = "RESOURCE_UNAVAILABLE"
	ErrCodeNotFound    Code = "NOT_FOUND"

	// Configuration errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeUnsupported   Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
