package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout attempt outcomes and latency.
type CheckoutMetrics struct {
	duration         *prometheus.HistogramVec
	outcomes         *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"payment_method"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Checkout attempts by terminal outcome.",
	}, []string{"payment_method", "outcome"})
	validationErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_validation_errors_total",
		Help: "Field validation failures surfaced during checkout.",
	}, []string{"field"})
	reg.MustRegister(duration, outcomes, validationErrors)
	return &CheckoutMetrics{
		duration:         duration,
		outcomes:         outcomes,
		validationErrors: validationErrors,
	}
}

// ObserveDuration records the wall time of one checkout attempt.
func (c *CheckoutMetrics) ObserveDuration(method string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(method)).Observe(duration.Seconds())
}

// IncOutcome increments the counter for a terminal checkout outcome.
func (c *CheckoutMetrics) IncOutcome(method, outcome string) {
	if c == nil || c.outcomes == nil {
		return
	}
	c.outcomes.WithLabelValues(normalizeLabel(method), normalizeLabel(outcome)).Inc()
}

// IncValidationError increments the per-field validation failure counter.
func (c *CheckoutMetrics) IncValidationError(field string) {
	if c == nil || c.validationErrors == nil {
		return
	}
	c.validationErrors.WithLabelValues(normalizeLabel(field)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
