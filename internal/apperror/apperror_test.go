package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		sentinel error
		code     string
		message  string
	}{
		{"not found", NotFound("article", 42), ErrNotFound, "not_found", "article not found with id 42"},
		{"validation", ValidationFailed("title", "title is required"), ErrValidation, "validation_error", "title is required"},
		{"conflict", Conflict("article", 7), ErrConflict, "conflict", "article conflict with id 7"},
		{"forbidden", Forbidden("read only"), ErrForbidden, "forbidden", "read only"},
		{"unauthorized", Unauthorized("invalid credentials"), ErrUnauthorized, "unauthorized", "invalid credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			if got := tt.err.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
			if got := tt.err.Error(); got != tt.message {
				t.Errorf("Error() = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestSentinelsDoNotOverlap(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrValidation, ErrConflict, ErrForbidden, ErrUnauthorized}
	err := NotFound("article", 1)

	for _, s := range sentinels[1:] {
		if errors.Is(err, s) {
			t.Errorf("NotFound unexpectedly matches %v", s)
		}
	}
}

func TestAs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("updating article: %w", ValidationFailed("text", "text must not be null"))

	appErr, ok := As(wrapped)
	if !ok {
		t.Fatal("As did not find the AppError")
	}
	if appErr.Field != "text" {
		t.Errorf("Field = %q, want %q", appErr.Field, "text")
	}
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped error lost its sentinel")
	}
}

func TestAs_PlainError(t *testing.T) {
	if _, ok := As(errors.New("disk I/O error")); ok {
		t.Error("As matched a plain error")
	}
	if _, ok := As(nil); ok {
		t.Error("As matched nil")
	}
}

func TestCode_UnknownSentinel(t *testing.T) {
	err := &AppError{Err: errors.New("something else"), Message: "x"}
	if got := err.Code(); got != "internal_error" {
		t.Errorf("Code() = %q, want internal_error", got)
	}
}
