// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
	ErrHasDependencies = errors.New("has dependencies")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenRevoked    = errors.New("token revoked")
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func BadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "BAD_REQUEST", message)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, "FORBIDDEN", message)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

func ConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, "CONFLICT", message)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"access token has expired",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"access token is invalid",
	)
}

func TokenRevokedError() *AppError {
	return NewAppError(
		http.StatusUnauthorized,
		"TOKEN_REVOKED",
		"access token has been revoked",
	)
}

// MapError converts a service error to its HTTP-facing AppError. Sentinel
// kinds stay distinguishable (forbidden vs not-found vs has-dependencies)
// so callers never have to match on message content.
func MapError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidInput):
		return BadRequestError(err.Error())
	case errors.Is(err, ErrForbidden):
		return ForbiddenError(err.Error())
	case errors.Is(err, ErrUnauthorized):
		return UnauthorizedError(err.Error())
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicateKey):
		return ConflictError(err.Error())
	case errors.Is(err, ErrHasDependencies):
		return ConflictError(err.Error())
	default:
		return NewAppError(
			http.StatusInternalServerError,
			"INTERNAL_ERROR",
			"an unexpected error occurred",
		)
	}
}
