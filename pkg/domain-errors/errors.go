// Package domainerrors provides coded errors shared by all domain services.
//
// Services wrap low-level failures with a stable code so transport layers can
// map them to HTTP statuses without inspecting error text. Import with the
// dErrors alias:
//
//	dErrors "lunchgate/pkg/domain-errors"
//
//	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store event")
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies an error class. Codes are part of the API contract and
// appear verbatim in the "error" field of JSON error envelopes.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_error"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal_error"
)

// Error is a coded domain error. Message is safe to show to clients for
// client-class codes; for CodeInternal it is logged but never returned.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from an error chain. Unrecognized errors are
// classified as internal so nothing unexpected leaks to clients.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the client-safe message from an error chain. Returns
// empty for unrecognized errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// IsClientError reports whether the error belongs to the caller rather than
// the service.
func IsClientError(err error) bool {
	switch CodeOf(err) {
	case CodeBadRequest, CodeValidation, CodeUnauthorized, CodeForbidden, CodeNotFound, CodeConflict:
		return true
	}
	return false
}
