// Package errors provides standardized error handling for the HTTP surface.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMethodNotAllowed     ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodePayloadTooLarge      ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeUnreadableBody       ErrorCode = "UNREADABLE_BODY"
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout              ErrorCode = "TIMEOUT_ERROR"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the error code onto the response status.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeUnreadableBody:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewMethodNotAllowedError is returned for anything other than POST and OPTIONS.
func NewMethodNotAllowedError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   fmt.Sprintf("method: %s", method),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestBodyError reports a body that could not be read in full. Bodies cut
// off by the size limit get PAYLOAD_TOO_LARGE.
func NewRequestBodyError(limit int64, err error) *StandardError {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return &StandardError{
			Code:      ErrCodePayloadTooLarge,
			Message:   fmt.Sprintf("Request body exceeds %d bytes", limit),
			Details:   err.Error(),
			Retryable: false,
			Metadata:  map[string]interface{}{"limit": limit},
			Timestamp: time.Now().UTC(),
			cause:     err,
		}
	}
	return &StandardError{
		Code:      ErrCodeUnreadableBody,
		Message:   "Request body could not be read",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewConfigurationMissingError names every missing configuration key.
func NewConfigurationMissingError(keys []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationMissing,
		Message:   fmt.Sprintf("Missing Google Sheets configuration: %s", strings.Join(keys, ", ")),
		Details:   "set the service-account credential and spreadsheet id",
		Retryable: false,
		Metadata:  map[string]interface{}{"missing": keys},
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError wraps a failure to build the authenticated client.
func NewAuthenticationError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   err.Error(),
		Details:   fmt.Sprintf("authentication against %s failed", service),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewExternalServiceError keeps the upstream message as the client-facing message.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalServiceError,
		Message:   err.Error(),
		Details:   fmt.Sprintf("external service '%s' error", service),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewTimeoutError(service string, timeout time.Duration, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("%s request timed out after %s", service, timeout),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInternalError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// AsStandardError returns err as a StandardError, wrapping unknown errors as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   err.Error(),
		Details:   "unexpected error",
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}
