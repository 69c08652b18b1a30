// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Fetch metrics
	FetchAttempts       *prometheus.CounterVec
	FetchFailures       *prometheus.CounterVec
	FetchDuration       *prometheus.HistogramVec
	ConsecutiveFailures *prometheus.GaugeVec

	// Validation metrics
	RecordsAdmitted prometheus.Counter
	RecordsRejected *prometheus.CounterVec

	// Cache metrics
	CacheReads  *prometheus.CounterVec
	CacheWrites *prometheus.CounterVec

	// Refresh metrics
	RefreshCycles   *prometheus.CounterVec
	RefreshDuration *prometheus.HistogramVec

	// Fallback metrics
	FallbackServed *prometheus.CounterVec

	// Health metrics
	LastSuccessfulRefresh *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "newsletter_factory"
	}

	return &Metrics{
		// Fetch metrics
		FetchAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "attempts_total",
			Help:      "Total number of source fetch attempts",
		}, []string{"source"}),
		FetchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "failures_total",
			Help:      "Total number of source fetch failures by kind",
		}, []string{"source", "kind"}),
		FetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "duration_seconds",
			Help:      "Source fetch duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		ConsecutiveFailures: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "consecutive_failures",
			Help:      "Current consecutive failure streak per source",
		}, []string{"source"}),

		// Validation metrics
		RecordsAdmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "records_admitted_total",
			Help:      "Total number of records that passed the grounding gate",
		}),
		RecordsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "records_rejected_total",
			Help:      "Total number of records rejected by the grounding gate",
		}, []string{"reason"}),

		// Cache metrics
		CacheReads: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "reads_total",
			Help:      "Total number of cache reads by category and origin",
		}, []string{"category", "origin"}),
		CacheWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "writes_total",
			Help:      "Total number of cache entry replacements by category",
		}, []string{"category"}),

		// Refresh metrics
		RefreshCycles: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "cycles_total",
			Help:      "Total number of refresh cycles by category and status",
		}, []string{"category", "status"}),
		RefreshDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "duration_seconds",
			Help:      "Refresh cycle duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"category"}),

		// Fallback metrics
		FallbackServed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fallback",
			Name:      "served_total",
			Help:      "Total number of requests served from curated samples",
		}, []string{"category"}),

		// Health metrics
		LastSuccessfulRefresh: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_refresh_timestamp",
			Help:      "Unix timestamp of the last successful refresh per category",
		}, []string{"category"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordFetchAttempt increments the fetch attempts counter.
func RecordFetchAttempt(source string) {
	DefaultMetrics.FetchAttempts.WithLabelValues(source).Inc()
}

// RecordFetchFailure records a fetch failure and the source's streak.
func RecordFetchFailure(source string, transient bool, streak int) {
	kind := "permanent"
	if transient {
		kind = "transient"
	}
	DefaultMetrics.FetchFailures.WithLabelValues(source, kind).Inc()
	DefaultMetrics.ConsecutiveFailures.WithLabelValues(source).Set(float64(streak))
}

// RecordFetchSuccess clears the source's failure streak and records latency.
func RecordFetchSuccess(source string, seconds float64) {
	DefaultMetrics.FetchDuration.WithLabelValues(source).Observe(seconds)
	DefaultMetrics.ConsecutiveFailures.WithLabelValues(source).Set(0)
}

// RecordValidation records the outcome of one validation pass.
func RecordValidation(admitted int, rejectedByReason map[string]int) {
	DefaultMetrics.RecordsAdmitted.Add(float64(admitted))
	for reason, n := range rejectedByReason {
		DefaultMetrics.RecordsRejected.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordCacheRead records a cache read and the origin it resolved to.
func RecordCacheRead(category, origin string) {
	DefaultMetrics.CacheReads.WithLabelValues(category, origin).Inc()
}

// RecordCacheWrite records a cache entry replacement.
func RecordCacheWrite(category string) {
	DefaultMetrics.CacheWrites.WithLabelValues(category).Inc()
}

// RecordRefreshCycle records a completed refresh cycle.
func RecordRefreshCycle(category, status string, durationSeconds float64) {
	DefaultMetrics.RefreshCycles.WithLabelValues(category, status).Inc()
	DefaultMetrics.RefreshDuration.WithLabelValues(category).Observe(durationSeconds)
	if status == "success" {
		DefaultMetrics.LastSuccessfulRefresh.WithLabelValues(category).SetToCurrentTime()
	}
}

// RecordFallbackServed records a request answered from curated samples.
func RecordFallbackServed(category string) {
	DefaultMetrics.FallbackServed.WithLabelValues(category).Inc()
}
