package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrResourceExhausted  = errors.New("resource exhausted")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code string, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors

func Unauthenticated(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "unauthenticated", message, ErrUnauthenticated)
}

func PermissionDenied(message string) *AppError {
	return NewAppError(http.StatusForbidden, "permission_denied", message, ErrPermissionDenied)
}

func InvalidArgument(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "invalid_argument", message, ErrInvalidArgument)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "not_found", message, ErrNotFound)
}

func FailedPrecondition(message string) *AppError {
	return NewAppError(http.StatusPreconditionFailed, "failed_precondition", message, ErrFailedPrecondition)
}

func ResourceExhausted(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, "resource_exhausted", message, ErrResourceExhausted)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal", "internal server error", err)
}
