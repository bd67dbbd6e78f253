package handler

// RESPONSE HELPERS:
// Every error response from the API has the same shape:
//
//	{"error": "not_found", "message": "article not found with id 42"}
//
// Validation errors also name the offending field:
//
//	{"error": "validation_error", "message": "title is required", "field": "title"}
//
// Payloads go out through go-chi/render. A type that implements
// render.Renderer gets a chance to adjust itself (and the status code)
// right before it is encoded.

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/sakif/articles/internal/apperror"
)

// ErrorResponse is the standard error body returned by all API endpoints.
type ErrorResponse struct {
	HTTPStatusCode int `json:"-"`

	Error   string `json:"error"`           // machine-readable, e.g. "not_found"
	Message string `json:"message"`         // human-readable
	Field   string `json:"field,omitempty"` // set for validation errors
}

// Render sets the status code before the body is encoded.
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// errInvalidRequest is returned when the body could not be decoded at all,
// before any domain validation ran.
func errInvalidRequest(err error) *ErrorResponse {
	return &ErrorResponse{
		HTTPStatusCode: http.StatusBadRequest,
		Error:          "invalid_request",
		Message:        err.Error(),
	}
}

var errInternal = &ErrorResponse{
	HTTPStatusCode: http.StatusInternalServerError,
	Error:          "internal_error",
	Message:        "An internal error occurred",
}

// statusFor maps a domain sentinel to its HTTP status.
var statusFor = map[error]int{
	apperror.ErrValidation:   http.StatusBadRequest,
	apperror.ErrUnauthorized: http.StatusUnauthorized,
	apperror.ErrForbidden:    http.StatusForbidden,
	apperror.ErrNotFound:     http.StatusNotFound,
	apperror.ErrConflict:     http.StatusConflict,
}

// errorResponse maps a domain error to its HTTP representation.
//
// This is the only place apperror sentinels become status codes. Anything
// that is not an *AppError becomes a generic 500 so SQL text and file paths
// never reach the client.
func errorResponse(err error) *ErrorResponse {
	appErr, ok := apperror.As(err)
	if !ok {
		return errInternal
	}

	status, ok := statusFor[appErr.Err]
	if !ok {
		return errInternal
	}

	return &ErrorResponse{
		HTTPStatusCode: status,
		Error:          appErr.Code(),
		Message:        appErr.Message,
		Field:          appErr.Field,
	}
}

// writeError renders err. Unexpected errors are logged with the request id
// so the generic 500 the client sees can be traced back.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	resp := errorResponse(err)
	if resp.HTTPStatusCode == http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", requestID(r)),
			slog.String("error", err.Error()),
		)
	}
	writeRender(w, r, logger, resp)
}

// writeRender is render.Render with a fallback. render.Render only fails
// when one of the Render hooks does, and nothing has been written by then.
func writeRender(w http.ResponseWriter, r *http.Request, logger *slog.Logger, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		logger.Error("failed to render response", slog.String("error", err.Error()))
		_ = render.Render(w, r, errInternal)
	}
}

func requestID(r *http.Request) string {
	return chimiddleware.GetReqID(r.Context())
}
