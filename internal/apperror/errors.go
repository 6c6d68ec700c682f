package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrPermission   = errors.New("forbidden")
	ErrValidation   = errors.New("invalid input")
	ErrSelfAction   = errors.New("action not allowed on own resource")
	ErrDuplicate    = errors.New("already exists")
	ErrInternal     = errors.New("internal server error")
)

// AppError wraps a sentinel with a human-readable message for the client.
type AppError struct {
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap attaches a client-facing message to one of the sentinel errors.
func Wrap(sentinel error, message string) error {
	return &AppError{Message: message, Err: sentinel}
}

// MapErrorToStatus maps domain errors to HTTP status codes.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrSelfAction):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
