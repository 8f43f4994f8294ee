// Package errors defines the structured error types used across the
// bizcomply service and their mapping to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error class.
type Code string

const (
	// CodeValidation indicates the request payload failed type, range, or
	// required-field constraints. Terminal; reported verbatim to the caller.
	CodeValidation Code = "validation_error"
	// CodeNotFound indicates a referenced record does not exist.
	CodeNotFound Code = "not_found"
	// CodeStorage indicates an underlying database read or write failure.
	// Retryable for reads; surfaced for writes.
	CodeStorage Code = "storage_error"
	// CodeCache indicates a cache backend failure. Never propagated to
	// callers; logged and treated as a cache miss.
	CodeCache Code = "cache_error"
	// CodeInternal indicates an unexpected server-side condition.
	CodeInternal Code = "internal_error"
)

// AppError is the structured application error. It carries an error class,
// an HTTP status, a caller-facing message, an optional wrapped cause, and
// free-form metadata for logging.
type AppError struct {
	Code     Code
	Status   int
	Message  string
	Cause    error
	Metadata map[string]any
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause attaches an underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithMeta attaches a metadata key/value pair.
func (e *AppError) WithMeta(key string, value any) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = value
	return e
}

// NewValidation builds a validation error for a malformed request.
func NewValidation(message string) *AppError {
	return &AppError{Code: CodeValidation, Status: http.StatusBadRequest, Message: message}
}

// NewValidationf builds a validation error with a formatted message.
func NewValidationf(format string, args ...any) *AppError {
	return NewValidation(fmt.Sprintf(format, args...))
}

// NewNotFound builds a not-found error for the named resource.
func NewNotFound(resource string, id any) *AppError {
	return &AppError{
		Code:     CodeNotFound,
		Status:   http.StatusNotFound,
		Message:  fmt.Sprintf("%s not found", resource),
		Metadata: map[string]any{"id": id},
	}
}

// NewStorage wraps a database failure.
func NewStorage(op string, cause error) *AppError {
	return &AppError{
		Code:    CodeStorage,
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("storage operation failed: %s", op),
		Cause:   cause,
	}
}

// NewCache wraps a cache backend failure.
func NewCache(op string, cause error) *AppError {
	return &AppError{
		Code:    CodeCache,
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("cache operation failed: %s", op),
		Cause:   cause,
	}
}

// NewInternal wraps an unexpected failure.
func NewInternal(message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Status: http.StatusInternalServerError, Message: message, Cause: cause}
}

// As attempts to extract an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsValidation reports whether err is a validation AppError.
func IsValidation(err error) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == CodeValidation
	}
	return false
}

// HTTPStatus returns the status for err, defaulting to 500 for plain errors.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Response is the JSON error body returned by the HTTP layer.
type Response struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ToResponse converts any error into the wire error shape. Internal details
// of non-AppError failures are not leaked to clients.
func ToResponse(err error) *Response {
	if appErr, ok := As(err); ok {
		return &Response{Error: string(appErr.Code), ErrorDescription: appErr.Message}
	}
	return &Response{Error: string(CodeInternal), ErrorDescription: "an unexpected error occurred"}
}
