package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the review module. All methods are
// nil-safe so tests and stripped-down deployments can pass a nil receiver.
type Metrics struct {
	// Full pipeline latency per evaluation
	EvaluateLatency prometheus.Histogram

	// Advisory round-trip latency (thread creation through final message)
	AdvisoryLatency prometheus.Histogram

	// Advisory outcomes: used, unavailable, timeout, empty, failed
	AdvisoryOutcome *prometheus.CounterVec

	// Risk classifications by level
	RiskLevel *prometheus.CounterVec

	// Final decisions by status and risk level
	DecisionOutcome *prometheus.CounterVec
}

// New creates a Metrics instance with all review module metrics registered.
func New() *Metrics {
	return &Metrics{
		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lunchgate_review_evaluate_duration_seconds",
			Help:    "Duration of full lunch order evaluation including the advisory round trip",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60},
		}),

		AdvisoryLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lunchgate_review_advisory_duration_seconds",
			Help:    "Duration of the advisory consultation including run polling",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		AdvisoryOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lunchgate_review_advisory_outcomes_total",
			Help: "Total advisory consultation outcomes",
		}, []string{"outcome"}), // outcome: "used", "unavailable", "timeout", "empty", "failed"

		RiskLevel: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lunchgate_review_risk_levels_total",
			Help: "Total risk classifications by level",
		}, []string{"level"}),

		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lunchgate_review_decisions_total",
			Help: "Total final decisions by status and risk level",
		}, []string{"status", "risk"}),
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// ObserveAdvisoryLatency records the advisory round-trip duration.
func (m *Metrics) ObserveAdvisoryLatency(d time.Duration) {
	if m != nil {
		m.AdvisoryLatency.Observe(d.Seconds())
	}
}

// IncrementAdvisoryOutcome records how an advisory consultation ended.
func (m *Metrics) IncrementAdvisoryOutcome(outcome string) {
	if m != nil {
		m.AdvisoryOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncrementRiskLevel records a risk classification.
func (m *Metrics) IncrementRiskLevel(level string) {
	if m != nil {
		m.RiskLevel.WithLabelValues(level).Inc()
	}
}

// IncrementDecision records a final decision.
func (m *Metrics) IncrementDecision(status, risk string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(status, risk).Inc()
	}
}
