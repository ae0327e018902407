package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SimplifierMetrics exposes counters/histograms for report simplification.
// All methods are safe on a nil receiver.
type SimplifierMetrics struct {
	generationTotal   *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec
	outcomesTotal     *prometheus.CounterVec
	extractionsTotal  *prometheus.CounterVec
	retriesTotal      *prometheus.CounterVec
}

// NewSimplifierMetrics registers the collectors with reg, or the default registerer when nil.
func NewSimplifierMetrics(reg prometheus.Registerer) *SimplifierMetrics {
	m := &SimplifierMetrics{
		generationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "labsimplify",
			Name:      "generation_requests_total",
			Help:      "Total generation backend calls",
		}, []string{"provider", "status"}),
		generationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "labsimplify",
			Name:      "generation_latency_seconds",
			Help:      "Latency of generation backend calls including retries",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		}, []string{"provider"}),
		outcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "labsimplify",
			Name:      "simplify_outcomes_total",
			Help:      "Simplify results by outcome (structured, unstructured, backend_error)",
		}, []string{"outcome"}),
		extractionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "labsimplify",
			Name:      "document_extractions_total",
			Help:      "Document text extractions by status (ok, empty, failed)",
		}, []string{"status"}),
		retriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "labsimplify",
			Name:      "generation_retries_total",
			Help:      "Retries of transient generation failures",
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.generationTotal, m.generationLatency, m.outcomesTotal, m.extractionsTotal, m.retriesTotal)
	return m
}

// ObserveGeneration records one logical backend call.
func (m *SimplifierMetrics) ObserveGeneration(provider string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.generationTotal.WithLabelValues(provider, status).Inc()
	m.generationLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *SimplifierMetrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.outcomesTotal.WithLabelValues(outcome).Inc()
}

func (m *SimplifierMetrics) ObserveExtraction(status string) {
	if m == nil {
		return
	}
	m.extractionsTotal.WithLabelValues(status).Inc()
}

// ObserveRetry satisfies llm.RetryObserver.
func (m *SimplifierMetrics) ObserveRetry(provider string) {
	if m == nil {
		return
	}
	m.retriesTotal.WithLabelValues(provider).Inc()
}
