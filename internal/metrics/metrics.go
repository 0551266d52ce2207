package metrics

import (
	"net/http"
	"time"

	"textsummarizer/internal/summarizer"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records summarization engine activity as Prometheus metrics.
//
// Metrics:
//   - summarizer_requests_total{model,outcome} - summarize calls by outcome
//   - summarizer_request_duration_seconds{model} - summarize call latency
//   - summarizer_compression_ratio{model} - ratio of successful summaries
//   - summarizer_model_loads_total{model,outcome} - model acquisition attempts
//   - summarizer_model_load_duration_seconds{model} - model acquisition latency
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	CompressionRatio *prometheus.HistogramVec
	LoadsTotal       *prometheus.CounterVec
	LoadDuration     *prometheus.HistogramVec
}

// New registers the metrics on a private registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summarizer_requests_total",
				Help: "Total number of summarize calls",
			},
			[]string{"model", "outcome"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "summarizer_request_duration_seconds",
				Help:    "Duration of summarize calls in seconds",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 14), // 5ms to ~40s
			},
			[]string{"model"},
		),

		CompressionRatio: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "summarizer_compression_ratio",
				Help:    "Summary words divided by input words",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
			[]string{"model"},
		),

		LoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summarizer_model_loads_total",
				Help: "Total number of model acquisition attempts",
			},
			[]string{"model", "outcome"},
		),

		LoadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "summarizer_model_load_duration_seconds",
				Help:    "Duration of model acquisition in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
			},
			[]string{"model"},
		),
	}
}

func (m *Metrics) ObserveLoad(modelID string, outcome summarizer.Outcome, d time.Duration) {
	m.LoadsTotal.WithLabelValues(modelID, string(outcome)).Inc()
	m.LoadDuration.WithLabelValues(modelID).Observe(d.Seconds())
}

func (m *Metrics) ObserveSummarize(
	modelID string,
	outcome summarizer.Outcome,
	d time.Duration,
	result *summarizer.Result,
) {
	m.RequestsTotal.WithLabelValues(modelID, string(outcome)).Inc()
	m.RequestDuration.WithLabelValues(modelID).Observe(d.Seconds())

	if result != nil {
		m.CompressionRatio.WithLabelValues(modelID).Observe(result.CompressionRatio)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
