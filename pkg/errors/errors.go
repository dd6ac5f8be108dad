// Package errors provides structured error types for graphcsv.
//
// Every failure that can end a run carries a [Code]. The command-line driver
// maps codes to process exit statuses with [ExitCode], so library packages
// never call os.Exit themselves.
//
// # Error Codes
//
//   - INVALID_*: bad command-line arguments or configuration
//   - USAGE: malformed option syntax
//   - FILE_*: the input file is missing or unreadable
//   - PARSE: the input is not well-formed CSV
//   - INVARIANT_VIOLATION: an edge endpoint is missing from the node list
//   - RENDER: the layout engine or rasterizer failed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "input file is required")
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // print usage
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileAccess, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Argument and configuration errors
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeUsage           Code = "USAGE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Input errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeFileAccess   Code = "FILE_ACCESS"
	ErrCodeParse        Code = "PARSE"

	// Internal errors
	ErrCodeInvariantViolation Code = "INVARIANT_VIOLATION"
	ErrCodeRender             Code = "RENDER"
	ErrCodeInternal           Code = "INTERNAL_ERROR"
)

// Exit statuses returned by [ExitCode].
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
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
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message and cause without the code prefix,
// keeping any context added by plain fmt.Errorf wrapping around it.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return strings.TrimSuffix(err.Error(), e.Error()) + msg
}

// ExitCode maps an error to the process exit status.
// A nil error is success, malformed option syntax is [ExitUsage], and every
// other failure is [ExitError].
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case Is(err, ErrCodeUsage):
		return ExitUsage
	default:
		return ExitError
	}
}
