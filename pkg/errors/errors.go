// Package errors provides structured error types for geoxml.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - Messages that name the failing path or attribute
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Missing attributes, files or document entries
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeAttributeNotFound, "no point attribute %q", name)
//	if errors.Is(err, errors.ErrCodeAttributeNotFound) {
//	    // Handle missing attribute
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidLayout    Code = "INVALID_LAYOUT"
	ErrCodeInvalidPolicy    Code = "INVALID_POLICY"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidAttribute Code = "INVALID_ATTRIBUTE"
	ErrCodeInvalidParameter Code = "INVALID_PARAMETER"

	// Geometry source errors
	ErrCodeAttributeNotFound Code = "ATTRIBUTE_NOT_FOUND"
	ErrCodePointOutOfRange   Code = "POINT_OUT_OF_RANGE"
	ErrCodeTypeMismatch      Code = "TYPE_MISMATCH"
	ErrCodeUnsupportedKind   Code = "UNSUPPORTED_KIND"

	// Document errors
	ErrCodeMalformedDocument Code = "MALFORMED_DOCUMENT"
	ErrCodeEmitterNotFound   Code = "EMITTER_NOT_FOUND"
	ErrCodeValueNotFound     Code = "VALUE_NOT_FOUND"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
