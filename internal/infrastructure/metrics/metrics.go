package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - HTTP endpoint latency and throughput
// - State store operation outcomes (applied / rejected by reason)
// - Completion service calls, fallbacks and circuit breaker state

const (
	OutcomeApplied  = "applied"
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeFallback = "fallback"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartlibrary_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartlibrary_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Store Metrics
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartlibrary_store_operations_total",
			Help: "State store operations by outcome (applied or rejection code)",
		},
		[]string{"operation", "outcome"},
	)

	// Completion Service Metrics
	CompletionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartlibrary_completion_requests_total",
			Help: "Completion service calls by outcome",
		},
		[]string{"operation", "outcome"},
	)

	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartlibrary_completion_duration_seconds",
			Help:    "Duration of completion service calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"operation"},
	)

	CompletionBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "smartlibrary_completion_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	LibrarianFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartlibrary_librarian_fallbacks_total",
			Help: "Replies where the fixed fallback text replaced model output",
		},
		[]string{"operation"},
	)

	RateLimitRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartlibrary_rate_limit_rejections_total",
			Help: "Requests rejected by the per-user rate limiter",
		},
		[]string{"scope"},
	)
)

// RecordAPIRequest records one HTTP request
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordStoreOperation records a store operation. An empty code means applied.
func RecordStoreOperation(operation, rejectionCode string) {
	outcome := OutcomeApplied
	if rejectionCode != "" {
		outcome = rejectionCode
	}
	StoreOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordCompletion records one completion call
func RecordCompletion(operation string, err error, duration time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	CompletionRequestsTotal.WithLabelValues(operation, outcome).Inc()
	CompletionDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFallback records a fallback reply
func RecordFallback(operation string) {
	LibrarianFallbacksTotal.WithLabelValues(operation).Inc()
}

// SetBreakerState publishes the breaker state as a number
func SetBreakerState(breaker string, state int) {
	CompletionBreakerState.WithLabelValues(breaker).Set(float64(state))
}

// RecordRateLimitRejection records a 429
func RecordRateLimitRejection(scope string) {
	RateLimitRejectionsTotal.WithLabelValues(scope).Inc()
}
