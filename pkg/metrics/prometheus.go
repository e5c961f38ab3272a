package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	signalsGenerated *prometheus.CounterVec
	symbolFailures   *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a recorder on the default Prometheus registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder on reg. Tests pass a fresh registry.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		signalsGenerated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartmoney_signals_generated_total",
				Help: "Total number of trading signals generated",
			},
			[]string{"type", "strength"},
		),
		symbolFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartmoney_symbol_failures_total",
				Help: "Symbols dropped from a batch because scoring failed",
			},
			[]string{"reason"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartmoney_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smartmoney_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSignal counts a generated signal.
func (r *Recorder) RecordSignal(signalType, strength string) {
	r.signalsGenerated.WithLabelValues(signalType, strength).Inc()
}

// RecordSymbolFailure counts a symbol dropped from a batch.
func (r *Recorder) RecordSymbolFailure(reason string) {
	r.symbolFailures.WithLabelValues(reason).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
