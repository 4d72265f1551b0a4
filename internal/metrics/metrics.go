// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RelationToggles counts toggles by kind, direction and whether the set changed.
	RelationToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_relation_toggles_total",
		Help: "Relationship toggles by kind, direction and outcome",
	}, []string{"kind", "direction", "changed"})

	// CounterDrift counts guarded decrements that did not apply.
	CounterDrift = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_counter_drift_total",
		Help: "Counter decrements refused because the counter would go negative",
	}, []string{"counter"})

	// CounterReconciled counts rows rewritten by the reconciler.
	CounterReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_counter_reconciled_rows_total",
		Help: "Rows whose counter was corrected by reconciliation",
	}, []string{"counter"})

	// FeedShortCircuits counts feed queries answered without touching the store.
	FeedShortCircuits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conduit_feed_short_circuit_total",
		Help: "Feed queries resolved to an empty result during planning",
	})

	// CacheResults counts cache lookups by cache and result (hit, miss, error).
	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_cache_results_total",
		Help: "Cache lookups by cache and result",
	}, []string{"cache", "result"})

	// HTTPRequests counts handled requests by route, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// HTTPDuration tracks request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "conduit_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
	}, []string{"route"})
)
