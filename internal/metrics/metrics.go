package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the inspection server's Prometheus collectors. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	Predictions       *prometheus.CounterVec
	InferenceDuration prometheus.Histogram
	InferenceErrors   prometheus.Counter
	DecodeFailures    prometheus.Counter
	CaptureErrors     prometheus.Counter
	Notifications     *prometheus.CounterVec
	StreamRunning     prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a Metrics instance on its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leather_predictions_total",
			Help: "Inspections completed, by source and verdict",
		}, []string{"source", "verdict"}),
		InferenceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leather_inference_duration_seconds",
			Help:    "Time spent in model inference",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		InferenceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leather_inference_errors_total",
			Help: "Inference calls that returned an error",
		}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leather_decode_failures_total",
			Help: "Uploaded images that could not be decoded",
		}),
		CaptureErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leather_capture_errors_total",
			Help: "Camera frame reads that failed",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leather_actuator_notifications_total",
			Help: "Actuator notifications, by result",
		}, []string{"result"}),
		StreamRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "leather_stream_running",
			Help: "Capture loop state (0=stopped, 1=running)",
		}),
	}

	m.registry.MustRegister(
		m.Predictions,
		m.InferenceDuration,
		m.InferenceErrors,
		m.DecodeFailures,
		m.CaptureErrors,
		m.Notifications,
		m.StreamRunning,
		collectors.NewGoCollector(),
	)

	return m
}

// ObservePrediction records one finished inspection.
func (m *Metrics) ObservePrediction(source, verdict string, took time.Duration) {
	if m == nil {
		return
	}
	m.Predictions.WithLabelValues(source, verdict).Inc()
	m.InferenceDuration.Observe(took.Seconds())
}

func (m *Metrics) InferenceError() {
	if m == nil {
		return
	}
	m.InferenceErrors.Inc()
}

func (m *Metrics) DecodeFailure() {
	if m == nil {
		return
	}
	m.DecodeFailures.Inc()
}

func (m *Metrics) CaptureError() {
	if m == nil {
		return
	}
	m.CaptureErrors.Inc()
}

// Notification records an actuator call outcome.
func (m *Metrics) Notification(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.Notifications.WithLabelValues(result).Inc()
}

func (m *Metrics) SetStreamRunning(running bool) {
	if m == nil {
		return
	}
	if running {
		m.StreamRunning.Set(1)
	} else {
		m.StreamRunning.Set(0)
	}
}

// Handler returns the Prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
