package errors

import (
	"net/http"

	"tasktrack/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Authentication and authorization errors
	ErrAuthenticationRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTHENTICATION_REQUIRED",
		"authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"you do not have access to this resource",
		"",
	)

	// ErrInvalidCredentials is deliberately identical for an unknown email
	// and for a wrong password, so a caller cannot probe which one failed.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	ErrMissingCredentials = NewBaseError(
		http.StatusBadRequest,
		"MISSING_CREDENTIALS",
		"email and password are required",
		"",
	)

	ErrInvalidSession = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_SESSION",
		"session is invalid or expired",
		"",
	)

	// Uniqueness violations on registration
	ErrDuplicateEmail = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"email is already registered",
		"",
	)

	ErrDuplicateUsername = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_USERNAME",
		"username is already taken",
		"",
	)

	// Lookup errors
	ErrTodoNotFound = NewBaseError(
		http.StatusNotFound,
		"TODO_NOT_FOUND",
		"todo not found",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	// Infrastructure errors
	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)
