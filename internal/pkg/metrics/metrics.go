// Package metrics exposes sensorscope's Prometheus collectors. A dedicated
// registry keeps test processes from cross-registering collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors the engine and web layer update.
type Metrics struct {
	registry *prometheus.Registry

	TicksTotal     prometheus.Counter
	SamplesTotal   prometheus.Counter
	ExportsTotal   prometheus.Counter
	CaptureRunning prometheus.Gauge
	BufferLength   prometheus.Gauge
}

// New creates the registry and registers all collectors, including the Go
// runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensorscope_ticks_total",
			Help: "Capture ticks fired since process start.",
		}),
		SamplesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensorscope_samples_appended_total",
			Help: "Samples appended to the ring buffers.",
		}),
		ExportsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensorscope_exports_total",
			Help: "CSV exports served.",
		}),
		CaptureRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensorscope_capture_running",
			Help: "1 while capture is running, 0 while paused.",
		}),
		BufferLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensorscope_buffer_length",
			Help: "Current number of buffered samples.",
		}),
	}
	registry.MustRegister(m.TicksTotal, m.SamplesTotal, m.ExportsTotal, m.CaptureRunning, m.BufferLength)
	return m
}

// Handler returns the HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
