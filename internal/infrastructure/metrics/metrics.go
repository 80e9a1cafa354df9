// Package metrics provides Prometheus metrics for the monitor service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "monitor"

var (
	// HTTPRequestsTotal counts served requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// IngestEventsTotal counts stream messages by outcome.
	IngestEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_events_total",
			Help:      "Total number of ingested stream messages",
		},
		[]string{"stream", "outcome"},
	)

	// TrendFetchesTotal counts trend provider lookups.
	TrendFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trend_fetches_total",
			Help:      "Total number of interest series lookups",
		},
		[]string{"window", "outcome"},
	)

	// TrendFetchDuration measures upstream trend calls.
	TrendFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trend_fetch_duration_seconds",
			Help:      "Duration of upstream trend requests in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"window"},
	)
)

// Ingest outcomes.
const (
	OutcomeStored    = "stored"
	OutcomeMalformed = "malformed"
	OutcomeFailed    = "failed"
)

// Trend outcomes.
const (
	OutcomeHit   = "cache_hit"
	OutcomeFetch = "fetched"
	OutcomeError = "error"
)

// RecordHTTPRequest records a served request.
func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordIngest records the outcome of one stream message.
func RecordIngest(stream, outcome string) {
	IngestEventsTotal.WithLabelValues(stream, outcome).Inc()
}

// RecordTrendFetch records the outcome of an interest series lookup.
func RecordTrendFetch(window, outcome string) {
	TrendFetchesTotal.WithLabelValues(window, outcome).Inc()
}

// ObserveTrendFetch records upstream latency.
func ObserveTrendFetch(window string, duration float64) {
	TrendFetchDuration.WithLabelValues(window).Observe(duration)
}
