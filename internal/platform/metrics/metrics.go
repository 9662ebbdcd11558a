package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is
// valid everywhere; the recording methods become no-ops so tests can skip
// registration.
type Metrics struct {
	ReadingsStarted         prometheus.Counter
	SpreadsProposed         prometheus.Counter
	SpreadFallbacks         prometheus.Counter
	Interpretations         prometheus.Counter
	InterpretationFallbacks prometheus.Counter
	SignIns                 prometheus.Counter
	RequestLatency          *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ReadingsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perspective_readings_started_total",
			Help: "Total number of readings started (spread pipeline runs)",
		}),
		SpreadsProposed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perspective_spreads_proposed_total",
			Help: "Total number of spreads synthesized by the generation collaborator",
		}),
		SpreadFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perspective_spread_fallbacks_total",
			Help: "Total number of spread proposals that fell back to the catalog default",
		}),
		Interpretations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perspective_interpretations_total",
			Help: "Total number of interpretations produced by the generation collaborator",
		}),
		InterpretationFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perspective_interpretation_fallbacks_total",
			Help: "Total number of interpretations served from the local fallback",
		}),
		SignIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perspective_sign_ins_total",
			Help: "Total number of successful identity sign-ins",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "perspective_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) IncReadingsStarted() {
	if m != nil {
		m.ReadingsStarted.Inc()
	}
}

func (m *Metrics) IncSpreadsProposed() {
	if m != nil {
		m.SpreadsProposed.Inc()
	}
}

func (m *Metrics) IncSpreadFallbacks() {
	if m != nil {
		m.SpreadFallbacks.Inc()
	}
}

func (m *Metrics) IncInterpretations() {
	if m != nil {
		m.Interpretations.Inc()
	}
}

func (m *Metrics) IncInterpretationFallbacks() {
	if m != nil {
		m.InterpretationFallbacks.Inc()
	}
}

func (m *Metrics) IncSignIns() {
	if m != nil {
		m.SignIns.Inc()
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(seconds)
	}
}
