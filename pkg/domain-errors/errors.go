// Package dErrors provides coded domain errors shared across services.
//
// Services return these so transports can translate failures into consistent
// responses without inspecting error strings. Stores return sentinel errors
// (pkg/platform/sentinel) and services translate them into domain errors at
// the boundary.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of domain failure. Codes are part of the public API:
// they appear verbatim in HTTP error envelopes and in emitted events.
type Code string

const (
	// Generic codes.
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal_error"

	// Naming lifecycle codes.
	CodeInvalidLabel     Code = "invalid_label"
	CodeInvalidDuration  Code = "invalid_duration"
	CodeLabelUnavailable Code = "label_unavailable"
	CodeLabelNotExists   Code = "label_not_exists"
	CodeLabelExpired     Code = "label_expired"

	// Token and record codes.
	CodeTokenExpired          Code = "token_expired"
	CodeInvalidBaseNode       Code = "invalid_base_node"
	CodeDefaultDomainMismatch Code = "default_domain_mismatch"

	// Authenticated update codes.
	CodeInvalidMessage        Code = "invalid_message"
	CodeHashedMessageNotMatch Code = "hashed_message_not_match"
	CodeSignatureNotMatch     Code = "signature_not_match"

	// Treasury and access codes.
	CodeNoProfits        Code = "no_profits"
	CodeAppNotAuthorized Code = "app_not_authorized"
)

// Error is a coded domain error. The wrapped cause, when present, is reachable
// through errors.Unwrap for logging; only Code and Message are client-visible.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and client-safe message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in a service.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain code to an HTTP status. Unknown codes map to 500
// so new codes fail safe rather than leaking as 200s.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput,
		CodeInvalidLabel, CodeInvalidDuration,
		CodeInvalidMessage, CodeHashedMessageNotMatch:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeSignatureNotMatch:
		return http.StatusUnauthorized
	case CodeAppNotAuthorized, CodeTokenExpired,
		CodeDefaultDomainMismatch, CodeInvalidBaseNode:
		return http.StatusForbidden
	case CodeNotFound, CodeLabelNotExists:
		return http.StatusNotFound
	case CodeConflict, CodeLabelUnavailable, CodeLabelExpired, CodeNoProfits:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
