package errors_utils

import (
	"errors"
	"fmt"
	"net/http"

	"taskflow/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type ErrorKind string

const (
	KindUnauthenticated    ErrorKind = "UNAUTHENTICATED"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindValidationFailed   ErrorKind = "VALIDATION_FAILED"
	KindInvariantViolation ErrorKind = "INVARIANT_VIOLATION"
	KindDependencyFailure  ErrorKind = "DEPENDENCY_FAILURE"
)

// AppError is an error the caller can act on. Message is safe to return
// to the client as is.
type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError of the same kind, so errors.Is(err, ErrForbidden) works.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}

	return other.Kind == e.Kind && other.Message == ""
}

var (
	ErrUnauthenticated    = &AppError{Kind: KindUnauthenticated}
	ErrNotFound           = &AppError{Kind: KindNotFound}
	ErrForbidden          = &AppError{Kind: KindForbidden}
	ErrValidationFailed   = &AppError{Kind: KindValidationFailed}
	ErrInvariantViolation = &AppError{Kind: KindInvariantViolation}
	ErrDependencyFailure  = &AppError{Kind: KindDependencyFailure}
)

func NewUnauthenticated(message string) error {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func NewNotFound(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewForbidden(message string) error {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewValidation(message string) error {
	return &AppError{Kind: KindValidationFailed, Message: message}
}

func NewValidationf(format string, args ...any) error {
	return &AppError{Kind: KindValidationFailed, Message: fmt.Sprintf(format, args...)}
}

func NewInvariantViolation(message string) error {
	return &AppError{Kind: KindInvariantViolation, Message: message}
}

func NewDependencyFailure(message string, cause error) error {
	return &AppError{Kind: KindDependencyFailure, Message: message, Cause: cause}
}

func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindInvariantViolation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithError writes {"error": message}. Errors that are not AppError
// are storage or programming faults: they are logged and hidden behind a
// generic message.
func RespondWithError(ctx *gin.Context, err error) {
	status := HTTPStatus(err)

	var appErr *AppError
	if !errors.As(err, &appErr) {
		logger.GetLogger().Error("unhandled request error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err)

		ctx.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	if appErr.Kind == KindDependencyFailure {
		logger.GetLogger().Error("dependency failure",
			"path", ctx.FullPath(),
			"message", appErr.Message,
			"error", appErr.Cause)
	}

	ctx.JSON(status, gin.H{"error": appErr.Message})
}
