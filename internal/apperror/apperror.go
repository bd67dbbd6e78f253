// Package apperror defines the domain errors the service layer returns.
//
// The repository never produces these: it passes storage failures through
// wrapped with %w, and reports "no such row" as an absent result. The service
// turns that absence into NotFound, and the handler maps each sentinel to an
// HTTP status.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinels. Match with errors.Is; every *AppError unwraps to exactly one.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// codes are the machine-readable names clients see in the "error" field.
var codes = map[error]string{
	ErrNotFound:     "not_found",
	ErrValidation:   "validation_error",
	ErrConflict:     "conflict",
	ErrForbidden:    "forbidden",
	ErrUnauthorized: "unauthorized",
}

// AppError carries a sentinel plus the message that is safe to show a client.
type AppError struct {
	Err     error
	Message string
	Field   string // only set by ValidationFailed
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the snake_case name of the sentinel, or "internal_error"
// for an AppError built by hand around something else.
func (e *AppError) Code() string {
	if c, ok := codes[e.Err]; ok {
		return c
	}
	return "internal_error"
}

// As finds the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// ValidationFailed reports bad input. field is the JSON name of the
// offending field, or "" when the whole payload is at fault.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %d", resource, id),
	}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

// Unauthorized is returned when credentials are missing or wrong.
func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}
