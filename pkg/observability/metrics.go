package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeExtraction = "extraction_error"
	OutcomeValidation = "validation_error"
	OutcomeConnection = "connection_error"
	OutcomeInput      = "invalid_input"
	OutcomeRender     = "render_error"
	OutcomeError      = "error"
)

// Metrics holds the pipeline's collectors.
type Metrics struct {
	registry *prometheus.Registry

	Generations  *prometheus.CounterVec
	LLMDuration  prometheus.Histogram
	Renders      *prometheus.CounterVec
	SweptTotal   prometheus.Counter
	SweepFailed  prometheus.Counter
	HTTPRequests *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deckgen_generations_total",
				Help: "Outline generations by outcome",
			},
			[]string{"outcome"},
		),
		LLMDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "deckgen_llm_request_duration_seconds",
				Help:    "Duration of LLM outline requests",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
		),
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deckgen_renders_total",
				Help: "Rendered decks by format and outcome",
			},
			[]string{"format", "outcome"},
		),
		SweptTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "deckgen_artifacts_swept_total",
				Help: "Artifacts removed by cleanup sweeps",
			},
		),
		SweepFailed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "deckgen_artifact_sweep_failures_total",
				Help: "Artifact deletions that failed during sweeps",
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deckgen_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}

	m.registry.MustRegister(
		m.Generations,
		m.LLMDuration,
		m.Renders,
		m.SweptTotal,
		m.SweepFailed,
		m.HTTPRequests,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveGeneration records one pipeline run.
func (m *Metrics) ObserveGeneration(outcome string) {
	if m == nil {
		return
	}
	m.Generations.WithLabelValues(outcome).Inc()
}

// ObserveLLM records the latency of one model call.
func (m *Metrics) ObserveLLM(d time.Duration) {
	if m == nil {
		return
	}
	m.LLMDuration.Observe(d.Seconds())
}

// ObserveRender records one render attempt.
func (m *Metrics) ObserveRender(format string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.Renders.WithLabelValues(format, outcome).Inc()
}

// ObserveSweep records the counts from one cleanup sweep.
func (m *Metrics) ObserveSweep(removed, failed int) {
	if m == nil {
		return
	}
	m.SweptTotal.Add(float64(removed))
	m.SweepFailed.Add(float64(failed))
}
