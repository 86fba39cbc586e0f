// Package errors provides standardized error handling for backend calls
// and settings persistence.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeHTTPFailure       ErrorCode = "HTTP_FAILURE"
	ErrCodeNetworkFailure    ErrorCode = "NETWORK_FAILURE"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"

	ErrCodeStorageReadFailed  ErrorCode = "STORAGE_READ_FAILED"
	ErrCodeStorageWriteFailed ErrorCode = "STORAGE_WRITE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPError represents a failed backend call. It always carries the numeric
// status and the raw response body so the UI can render full diagnostics.
type HTTPError struct {
	Code      ErrorCode `json:"code"`
	Status    int       `json:"status"`
	BodyText  string    `json:"bodyText,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTPError[%d]: %s", e.Status, e.Message)
}

// ==========================
// Constructors
// ==========================

// NewValidationError creates a client-side validation error. These are
// raised before any network call is made.
func NewValidationError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewHTTPError creates an error for a non-2xx backend response.
func NewHTTPError(status int, bodyText, message string) *HTTPError {
	return &HTTPError{
		Code:      ErrCodeHTTPFailure,
		Status:    status,
		BodyText:  bodyText,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponseError creates an error for a 2xx response whose body
// could not be decoded or lacks required fields. Treated like an HTTP
// failure so status and raw body stay available.
func NewMalformedResponseError(status int, bodyText, message string) *HTTPError {
	return &HTTPError{
		Code:      ErrCodeMalformedResponse,
		Status:    status,
		BodyText:  bodyText,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkFailure,
		Message:   fmt.Sprintf("Network failure during %s", operation),
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageReadError creates a storage read error. Storage errors are
// logged and absorbed by the settings store, never surfaced to callers.
func NewStorageReadError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageReadFailed,
		Message:   fmt.Sprintf("Failed to read settings from %s", backend),
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageWriteError creates a storage write error.
func NewStorageWriteError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageWriteFailed,
		Message:   fmt.Sprintf("Failed to write settings to %s", backend),
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Utility Functions
// ==========================

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var stdErr *StandardError
	return errors.As(err, &stdErr) && stdErr.Code == ErrCodeValidationFailed
}

// AsHTTPError extracts an HTTPError from err if present.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// CodeOf returns the error code for metrics labels, falling back to
// NETWORK_FAILURE for untyped errors from the transport.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return ErrCodeNetworkFailure
}
