// Package errors defines the structured error taxonomy shared by the
// layerpeek inspection pipeline and its HTTP boundary.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeValidation indicates malformed or missing input at the boundary.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeAcquisition indicates an image pull or inspect failure.
	ErrCodeAcquisition ErrorCode = "acquisition"
	// ErrCodeSandbox indicates a container create or remove failure.
	ErrCodeSandbox ErrorCode = "sandbox"
	// ErrCodeExtraction indicates a malformed or truncated archive stream.
	ErrCodeExtraction ErrorCode = "extraction"
	// ErrCodeNotFound indicates an unknown job id, an expired cache entry,
	// or a missing file path.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeInternal indicates an unclassified internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError is a structured application error with a code, a human-readable
// message, and an optional cause. It supports errors.Is and errors.As through
// Unwrap.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with a formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with a formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a new Internal error with a formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// Acquisition wraps an image pull/inspect failure.
func Acquisition(err error, message string) *AppError {
	return Wrap(err, ErrCodeAcquisition, message)
}

// Sandbox wraps a container create/remove failure.
func Sandbox(err error, message string) *AppError {
	return Wrap(err, ErrCodeSandbox, message)
}

// Extraction wraps a malformed archive stream failure.
func Extraction(err error, message string) *AppError {
	return Wrap(err, ErrCodeExtraction, message)
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsAcquisition checks if an error is an Acquisition error.
func IsAcquisition(err error) bool {
	return isCode(err, ErrCodeAcquisition)
}

// IsSandbox checks if an error is a Sandbox error.
func IsSandbox(err error) bool {
	return isCode(err, ErrCodeSandbox)
}

// IsExtraction checks if an error is an Extraction error.
func IsExtraction(err error) bool {
	return isCode(err, ErrCodeExtraction)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// GetCode returns the ErrorCode from an error, or empty string if the error
// is not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
