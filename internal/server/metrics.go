package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instruments exposed by the server.
// Each Metrics value carries its own registry so that tests can build
// servers independently without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests  prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	evalDuration    prometheus.Histogram
	evalResultBits  prometheus.Histogram
	evalErrors      *prometheus.CounterVec
}

// NewMetrics creates the server metrics and their backing registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bigcalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_requests_total",
			Help: "Total HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_request_duration_seconds",
			Help:    "HTTP request latency by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bigcalc_eval_duration_seconds",
			Help:    "Expression evaluation latency.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		}),
		evalResultBits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bigcalc_eval_result_bits",
			Help:    "Bit length of evaluation results.",
			Buckets: prometheus.ExponentialBuckets(8, 4, 16),
		}),
		evalErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_eval_errors_total",
			Help: "Failed evaluations by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.requestDuration,
		m.evalDuration,
		m.evalResultBits,
		m.evalErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests records the start of an in-flight request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests records the end of an in-flight request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveRequest records a finished HTTP request.
func (m *Metrics) ObserveRequest(path, code string, d time.Duration) {
	m.requestsTotal.WithLabelValues(path, code).Inc()
	m.requestDuration.WithLabelValues(path).Observe(d.Seconds())
}

// ObserveEvaluation records a successful expression evaluation.
func (m *Metrics) ObserveEvaluation(resultBits int, d time.Duration) {
	m.evalDuration.Observe(d.Seconds())
	m.evalResultBits.Observe(float64(resultBits))
}

// ObserveEvalError records a failed evaluation, bucketed by error kind.
func (m *Metrics) ObserveEvalError(kind string) {
	m.evalErrors.WithLabelValues(kind).Inc()
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
