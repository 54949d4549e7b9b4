// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcutracker_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mcutracker_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Rate Limiter Metrics
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_rate_limit_rejections_total",
			Help: "Requests rejected by the fixed-window limiter",
		},
		[]string{"preset"},
	)

	RateLimitTrackedIdentifiers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mcutracker_rate_limit_tracked_identifiers",
			Help: "Windows held in the rate limit store after the last sweep",
		},
	)

	RateLimitSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mcutracker_rate_limit_swept_total",
			Help: "Expired rate limit windows reclaimed by the sweeper",
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcutracker_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_store_errors_total",
			Help: "Store operations that returned an unexpected error",
		},
		[]string{"backend", "operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mcutracker_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mcutracker_circuit_breaker_consecutive_failures",
			Help: "Consecutive failures seen by the circuit breaker",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Catalog Merge Metrics
	OverrideFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mcutracker_override_fallbacks_total",
			Help: "Reads served from the static catalog because overrides were unavailable",
		},
	)

	OverrideUpserts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mcutracker_override_upserts_total",
			Help: "Admin override upserts",
		},
	)

	OverrideRejectedURLs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_override_rejected_urls_total",
			Help: "Override image URLs ignored because they matched the dead-URL denylist",
		},
		[]string{"field"},
	)

	// Account Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_auth_attempts_total",
			Help: "Registration and login attempts",
		},
		[]string{"action", "result"},
	)

	ProgressUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_progress_updates_total",
			Help: "Watched-set writes",
		},
		[]string{"kind"}, // replace, toggle
	)

	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_achievements_unlocked_total",
			Help: "Achievements newly unlocked by a progress update",
		},
		[]string{"achievement"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_events_published_total",
			Help: "Events published to the in-process bus",
		},
		[]string{"topic"},
	)

	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcutracker_events_processed_total",
			Help: "Events handled by subscribers",
		},
		[]string{"topic", "result"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records the latency of a store call and counts it as an
// error when err is non-nil. Callers pass nil for expected misses (not found).
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordRateLimitRejection counts a 429 for the named preset.
func RecordRateLimitRejection(preset string) {
	RateLimitRejections.WithLabelValues(preset).Inc()
}

// RecordRateLimitSweep records the outcome of one sweep.
func RecordRateLimitSweep(removed, remaining int) {
	RateLimitSwept.Add(float64(removed))
	RateLimitTrackedIdentifiers.Set(float64(remaining))
}

// RecordAuthAttempt counts a register or login outcome.
func RecordAuthAttempt(action string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthAttempts.WithLabelValues(action, result).Inc()
}

// RecordProgressUpdate counts a watched-set write of the given kind.
func RecordProgressUpdate(kind string) {
	ProgressUpdates.WithLabelValues(kind).Inc()
}

// RecordAchievementUnlocked counts a newly unlocked achievement.
func RecordAchievementUnlocked(id string) {
	AchievementsUnlocked.WithLabelValues(id).Inc()
}

// RecordEventPublished counts a published event.
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventProcessed counts a handled event.
func RecordEventProcessed(topic string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	EventsProcessed.WithLabelValues(topic, result).Inc()
}
