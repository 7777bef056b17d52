// Package errors provides structured error types for stepgraph.
//
// Every failure that reaches a user (CLI output, API response) carries a
// machine-readable [Code] so callers can tell a missing line snapshot apart
// from a malformed one, and both apart from a defect in the engine itself.
//
// # Error Codes
//
// Codes fall into four groups:
//   - Data state: NO_DATA (nothing to build from) and INVALID_DATA (something
//     is there, but it is not a non-empty list of lines)
//   - INVALID_*: caller-supplied options that fail validation
//   - NETWORK_* / TIMEOUT: failures talking to the ingestion service
//   - INTERNAL_ERROR: a broken engine invariant, never expected in practice
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMode, "unknown mode %q", mode)
//	if errors.Is(err, errors.ErrCodeInvalidMode) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "upload %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Data state
	ErrCodeNoData      Code = "NO_DATA"
	ErrCodeInvalidData Code = "INVALID_DATA"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidMode    Code = "INVALID_MODE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidID      Code = "INVALID_ID"
	ErrCodeInvalidFile    Code = "INVALID_FILE"
	ErrCodeIncompatible   Code = "INCOMPATIBLE_LAYOUT"
	ErrCodeInvalidBackend Code = "INVALID_BACKEND"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network errors
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeUpstream Code = "UPSTREAM_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// User-facing messages for the two data states. The wording matches what the
// web front end has always shown so existing clients can keep matching on it.
const (
	MsgNoData      = "No flowchart data found. Please upload a PDF first."
	MsgInvalidData = "Invalid flowchart data."
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

// NoData returns the canonical "no data" error.
func NoData() *Error {
	return New(ErrCodeNoData, MsgNoData)
}

// InvalidData returns the canonical "invalid data" error wrapping cause.
func InvalidData(cause error) *Error {
	return Wrap(ErrCodeInvalidData, cause, MsgInvalidData)
}

// Internal reports a violated engine invariant.
func Internal(format string, args ...any) *Error {
	return New(ErrCodeInternal, format, args...)
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
