// Package errors defines the application error taxonomy shared between
// the usecase and delivery layers.
package errors

import (
	"net/http"

	"habitly/internal/errors"
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

// Is matches on the business error code, so a derived error built with
// WithDetails still compares equal to its predefined sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
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
	// Credential errors. The message is deliberately uniform so that a
	// failed login does not reveal whether the username exists.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid username or password",
		"",
	)

	// Token errors
	ErrMalformedToken = NewBaseError(
		http.StatusUnauthorized,
		"MALFORMED_TOKEN",
		"token is malformed or its signature is invalid",
		"",
	)

	ErrExpiredToken = NewBaseError(
		http.StatusUnauthorized,
		"EXPIRED_TOKEN",
		"token has expired",
		"",
	)

	ErrWrongTokenCategory = NewBaseError(
		http.StatusUnauthorized,
		"WRONG_TOKEN_CATEGORY",
		"token category does not match this endpoint",
		"",
	)

	ErrMissingRefreshToken = NewBaseError(
		http.StatusUnauthorized,
		"MISSING_REFRESH_TOKEN",
		"refresh token is missing",
		"",
	)

	// Authorization errors
	ErrUnauthorizedRole = NewBaseError(
		http.StatusForbidden,
		"UNAUTHORIZED_ROLE",
		"role does not permit access to this resource",
		"",
	)

	// Account errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"account not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"username or email is already registered",
		"",
	)

	// DuplicateAccountRace surfaces only when the single retry after a
	// uniqueness violation also fails; this indicates a storage anomaly
	// beyond normal contention.
	ErrDuplicateAccountRace = NewBaseError(
		http.StatusInternalServerError,
		"DUPLICATE_ACCOUNT_RACE",
		"account creation conflict could not be resolved",
		"",
	)

	// Federation errors. Provider internals are never disclosed to the client.
	ErrFederationFailed = NewBaseError(
		http.StatusUnauthorized,
		"FEDERATION_FAILED",
		"external sign-in failed",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
