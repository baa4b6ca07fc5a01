package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search subsystem Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "search_requests_total",
			Help:      "Searches served, by the backend that answered",
		},
		[]string{"backend"}, // "index" / "catalog"
	)

	SearchFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "search_fallback_total",
			Help:      "Searches routed to the catalog instead of the index",
		},
		[]string{"reason"}, // "unavailable" / "error"
	)

	IndexSyncTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "index_sync_total",
			Help:      "Document sync operations against the search index",
		},
		[]string{"op", "result"}, // op: "upsert" / "remove"; result: "ok" / "error" / "skipped"
	)

	SuggestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "suggestions_total",
			Help:      "Suggestion requests by outcome",
		},
		[]string{"result"}, // "ok" / "empty" / "unavailable" / "error"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cinedex",
			Name:      "search_duration_seconds",
			Help:      "Search execution time by answering backend",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"backend"},
	)
)

var registerOnce sync.Once

// Register registers every cinedex collector with the default registry.
// Must be called once from main; repeated calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			SearchRequestsTotal,
			SearchFallbackTotal,
			IndexSyncTotal,
			SuggestionsTotal,
			SearchDuration,
		)
	})
}
