package errors

import (
	"net/http"

	"github.com/pkg/errors"
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

// Is matches any BaseError carrying the same business error code,
// so variants built with WithMessage or WithDetails still satisfy errors.Is.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
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

// WithMessage returns a copy with a different client-facing message.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Predefined error types
var (
	// Payload errors
	ErrMalformedPayload = NewBaseError(
		http.StatusBadRequest,
		"MALFORMED_PAYLOAD",
		"Error : Invalid JSON",
		"",
	)

	ErrMethodNotAllowed = NewBaseError(
		http.StatusMethodNotAllowed,
		"METHOD_NOT_ALLOWED",
		"Error : Method not allowed",
		"",
	)

	// Login errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Error : Invalid username or password",
		"",
	)

	// ErrChallengeNotFound and ErrCodeMismatch share a message so callers cannot
	// tell a dead handle from a wrong code.
	ErrChallengeNotFound = NewBaseError(
		http.StatusUnauthorized,
		"OTP_CHALLENGE_NOT_FOUND",
		"Error : Invalid or expired OTP",
		"",
	)

	ErrCodeMismatch = NewBaseError(
		http.StatusUnauthorized,
		"OTP_CODE_MISMATCH",
		"Error : Invalid or expired OTP",
		"",
	)

	// Token errors
	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"Error: Token has expired",
		"",
	)

	ErrTokenMalformed = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_MALFORMED",
		"Error: Invalid or expired token",
		"",
	)

	ErrWrongTokenKind = NewBaseError(
		http.StatusUnauthorized,
		"WRONG_TOKEN_KIND",
		"Error: Token is not an access token",
		"",
	)

	ErrTokenRevoked = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_REVOKED",
		"Error: Invalid Authorization Token",
		"",
	)

	ErrTokenMismatch = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_MISMATCH",
		"Error : Refresh token does not match user",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Error : Invalid or expired refresh token",
		"",
	)

	ErrMissingAuthHeader = NewBaseError(
		http.StatusBadRequest,
		"MISSING_AUTH_HEADER",
		"Error: Authorization header required",
		"",
	)

	ErrRoleForbidden = NewBaseError(
		http.StatusForbidden,
		"ROLE_FORBIDDEN",
		"Error: Access restricted",
		"",
	)

	// User errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Error : User not found",
		"",
	)

	// ErrUserVanished is returned when an account is deleted between the password and OTP steps.
	ErrUserVanished = NewBaseError(
		http.StatusNotFound,
		"USER_VANISHED",
		"Error : User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Error : Username already exists",
		"",
	)

	// ErrEmailTaken is the directory-facing duplicate: accounts created by email use it as username.
	ErrEmailTaken = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_TAKEN",
		"Error : User with this email already exists",
		"",
	)

	ErrRoleNotFound = NewBaseError(
		http.StatusBadRequest,
		"ROLE_NOT_FOUND",
		"Error : Role does not exist",
		"",
	)

	ErrRoleRequired = NewBaseError(
		http.StatusBadRequest,
		"ROLE_REQUIRED",
		"Error : Please Select a role for the User",
		"",
	)

	// Infrastructure errors
	ErrStoreUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORE_UNAVAILABLE",
		"Error : Service temporarily unavailable",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Error : Internal server error",
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

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
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
	return "Error : Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Code extracts the business error code of err, or INTERNAL_ERROR when err is not an AppError.
func Code(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.ErrorCode()
	}

	return ErrInternalError.ErrorCode()
}
