// File: internal/services/consultation/metrics.go
package consultation

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for the consultations counter.
const (
	outcomeAI                 = "ai"
	outcomeBypass             = "emergency_bypass"
	outcomePoolFallback       = "pool_fallback"
	outcomeValidationFallback = "validation_fallback"
	outcomeSystemFailure      = "system_failure"
)

// Metrics holds the Prometheus instruments for the consultation pipeline.
type Metrics struct {
	ConsultationsTotal   *prometheus.CounterVec
	ConsultationDuration prometheus.Histogram
	EmergencyLevelTotal  *prometheus.CounterVec
	ValidationTotal      *prometheus.CounterVec
	ProviderLatency      prometheus.Histogram
}

// NewMetrics creates and registers the pipeline instruments. Tests pass
// their own registry to avoid collisions with the default one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ConsultationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consultation_requests_total",
				Help: "Total consultations by terminal outcome",
			},
			[]string{"outcome"},
		),
		ConsultationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "consultation_duration_seconds",
				Help:    "End-to-end consultation latency",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
		),
		EmergencyLevelTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consultation_emergency_level_total",
				Help: "Emergency assessments by level",
			},
			[]string{"level"},
		),
		ValidationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consultation_validation_total",
				Help: "Validation outcomes by result and safety level",
			},
			[]string{"result", "safety"},
		),
		ProviderLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "consultation_provider_latency_seconds",
				Help:    "Latency of the provider call that served the response",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
		),
	}

	reg.MustRegister(
		m.ConsultationsTotal,
		m.ConsultationDuration,
		m.EmergencyLevelTotal,
		m.ValidationTotal,
		m.ProviderLatency,
	)

	// Pre-initialize outcome labels so dashboards see zeroes immediately.
	for _, outcome := range []string{outcomeAI, outcomeBypass, outcomePoolFallback, outcomeValidationFallback, outcomeSystemFailure} {
		m.ConsultationsTotal.WithLabelValues(outcome)
	}

	return m
}
