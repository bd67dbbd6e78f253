// Package metrics declares the prometheus collectors the server exports on
// /metrics. Collectors register themselves with the default registry via
// promauto.
package metrics

const Namespace = "articles"

// Outcome label values shared by the collectors.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)
