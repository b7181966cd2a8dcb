package common

import (
	"errors"
	"net/http"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION_ERROR"
	CodePrecondition = "PRECONDITION_FAILED"
	CodeInternal     = "INTERNAL"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// NotFound reports a missing entity, e.g. NotFound("edition").
func NotFound(entity string) *AppError {
	return NewAppError(CodeNotFound, entity+" not found", http.StatusNotFound, nil)
}

// Conflict reports a uniqueness or state conflict.
func Conflict(message string, err error) *AppError {
	return NewAppError(CodeConflict, message, http.StatusConflict, err)
}

// Validation reports malformed input. Details usually maps field names to rules.
func Validation(message string, details any) *AppError {
	appErr := NewAppError(CodeValidation, message, http.StatusBadRequest, nil)
	appErr.Details = details
	return appErr
}

// Precondition reports input that is well formed but cannot be processed in the current state.
func Precondition(message string, err error) *AppError {
	return NewAppError(CodePrecondition, message, http.StatusBadRequest, err)
}

// Internal wraps an unexpected failure. The message is opaque; the cause stays in Err.
func Internal(err error) *AppError {
	return NewAppError(CodeInternal, "internal error", http.StatusInternalServerError, err)
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
