package service

import (
	"errors"

	"github.com/sakif/articles/internal/apperror"
	"github.com/sakif/articles/internal/metrics"
)

// outcome maps an operation error to the metrics outcome label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, apperror.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, apperror.ErrValidation):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
