package errors

import (
	"net/http"

	"zentora/internal/domain/entity"
	"zentora/internal/errors"
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
	// Registration and verification errors
	ErrEmailAlreadyRegistered = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_ALREADY_REGISTERED",
		"An account with this email already exists",
		"",
	)

	ErrVerificationCodeInvalid = NewBaseError(
		http.StatusBadRequest,
		"VERIFICATION_CODE_INVALID",
		"Invalid or expired verification code",
		"",
	)

	ErrAlreadyVerified = NewBaseError(
		http.StatusBadRequest,
		"ALREADY_VERIFIED",
		"This email is already verified",
		"",
	)

	ErrEmailNotVerified = NewBaseError(
		http.StatusForbidden,
		"EMAIL_NOT_VERIFIED",
		"Please verify your email before logging in",
		"",
	)

	ErrMailDeliveryFailed = NewBaseError(
		http.StatusInternalServerError,
		"MAIL_DELIVERY_FAILED",
		"Could not send the email, please try again later",
		"",
	)

	// Credential errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrSamePassword = NewBaseError(
		http.StatusBadRequest,
		"SAME_PASSWORD",
		"New password must differ from the current one",
		"",
	)

	ErrResetCodeInvalid = NewBaseError(
		http.StatusBadRequest,
		"RESET_CODE_INVALID",
		"Invalid or expired password reset code",
		"",
	)

	// Account lifecycle errors
	ErrAccountSuspended = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_SUSPENDED",
		"This account has been suspended",
		"",
	)

	ErrAccountDeleted = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_DELETED",
		"This account has been deleted",
		"",
	)

	ErrAccountNotDeleted = NewBaseError(
		http.StatusBadRequest,
		"ACCOUNT_NOT_DELETED",
		"This account is not deleted and cannot be reactivated",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// Token errors
	ErrAccessTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"ACCESS_TOKEN_INVALID",
		"Invalid or expired access token",
		"",
	)

	ErrTokenRevoked = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_REVOKED",
		"This token has been revoked",
		"",
	)

	ErrMissingToken = NewBaseError(
		http.StatusForbidden,
		"MISSING_TOKEN",
		"Authentication credentials were not provided",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusBadRequest,
		"REFRESH_TOKEN_INVALID",
		"Invalid refresh token",
		"",
	)

	ErrRefreshTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_EXPIRED",
		"Refresh token has expired, please log in again",
		"",
	)

	ErrRefreshSessionInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_SESSION_INVALID",
		"No active session matches this refresh token",
		"",
	)

	// OAuth errors
	ErrOAuthStateInvalid = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_STATE_INVALID",
		"Invalid or expired OAuth state",
		"",
	)

	ErrOAuthCodeInvalid = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_CODE_INVALID",
		"Invalid authorization code",
		"",
	)

	ErrOAuthEmailMissing = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_EMAIL_MISSING",
		"The provider did not supply a verified email address",
		"",
	)

	ErrOAuthProviderUnknown = NewBaseError(
		http.StatusNotFound,
		"OAUTH_PROVIDER_UNKNOWN",
		"Unknown OAuth provider",
		"",
	)

	ErrExchangeCodeInvalid = NewBaseError(
		http.StatusBadRequest,
		"EXCHANGE_CODE_INVALID",
		"Invalid or expired exchange code",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// NewSocialAccountError reports that a password flow was attempted on an
// account owned by a social provider, naming that provider.
func NewSocialAccountError(provider entity.AuthProvider) *BaseError {
	return NewBaseError(
		http.StatusBadRequest,
		"SOCIAL_ACCOUNT",
		"This account uses "+string(provider)+" sign-in and has no password",
		"",
	)
}

// NewProviderConflictError reports that the email is already owned by a
// different provider than the one completing sign-in.
func NewProviderConflictError(existing entity.AuthProvider) *BaseError {
	return NewBaseError(
		http.StatusConflict,
		"PROVIDER_CONFLICT",
		"This email is already registered through "+string(existing),
		"",
	)
}

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
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
