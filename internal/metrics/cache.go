package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameCacheLookups = "cache_lookups_total"
	LabelResult      = "result"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

var CacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameCacheLookups,
		Help:      "Article cache lookups by result",
		Namespace: Namespace,
	},
	[]string{LabelResult},
)
