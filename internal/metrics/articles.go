package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameArticleOperations = "operations_total"
	LabelOperation        = "operation"
	LabelOutcome          = "outcome"
)

var ArticleOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameArticleOperations,
		Help:      "Article service operations by outcome",
		Namespace: Namespace,
	},
	[]string{LabelOperation, LabelOutcome},
)
