// Package errors provides standardized error handling for the HTTP surface.
package errors

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// client-caused
	ErrCodeInvalidPayload   ErrorCode = "INVALID_PAYLOAD"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidInterests ErrorCode = "INVALID_INTERESTS"
	ErrCodePayloadTooLarge  ErrorCode = "PAYLOAD_TOO_LARGE"

	// deployment-caused
	ErrCodeSchemaDrift        ErrorCode = "SCHEMA_DRIFT"
	ErrCodeArtifactLoadFailed ErrorCode = "ARTIFACT_LOAD_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
// Details is either a []string (itemized client errors) or a map (diagnostics).
type StandardError struct {
	Code      ErrorCode   `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Trace     string      `json:"-"`
	Cause     error       `json:"-"`
	Timestamp time.Time   `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Cause != nil && e.Code != ErrCodeInternal {
		return fmt.Sprintf("StandardError[%s]: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps an error code to its response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidPayload, ErrCodeValidationFailed, ErrCodeInvalidInterests:
		return http.StatusBadRequest
	case ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory groups codes for logs and metrics.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidPayload, ErrCodeValidationFailed, ErrCodeInvalidInterests, ErrCodePayloadTooLarge:
		return "client"
	case ErrCodeSchemaDrift, ErrCodeArtifactLoadFailed:
		return "deployment"
	default:
		return "unexpected"
	}
}

// ==========================
// 2. Error Constructors
// ==========================

func NewInvalidPayloadError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPayload,
		Message:   "Invalid or empty JSON payload",
		Timestamp: time.Now().UTC(),
	}
}

func NewPayloadTooLargeError(limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadTooLarge,
		Message:   fmt.Sprintf("Request body exceeds %d bytes", limit),
		Timestamp: time.Now().UTC(),
	}
}

func NewValidationFailedError(details []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Validation failed",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInterestsError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInterests,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaDriftError carries a diagnostics map describing the mismatch
// between the running code and the loaded artifacts.
func NewSchemaDriftError(message string, diagnostics map[string]interface{}, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaDrift,
		Message:   message,
		Details:   diagnostics,
		Cause:     cause,
		Timestamp: time.Now().UTC(),
	}
}

func NewArtifactLoadFailedError(name string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactLoadFailed,
		Message:   fmt.Sprintf("Failed to load artifact '%s'", name),
		Details:   err.Error(),
		Cause:     err,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure and captures the current stack.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   err.Error(),
		Trace:     fmt.Sprintf("%+v\n\n%s", err, debug.Stack()),
		Cause:     err,
		Timestamp: time.Now().UTC(),
	}
}
