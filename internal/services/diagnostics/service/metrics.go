package service

import (
	"context"
	"net/http"

	"socialnorm/internal/core/normalize"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports normalization counters to prometheus
type Metrics struct {
	reg        *prometheus.Registry
	Normalized *prometheus.CounterVec
	Failures   *prometheus.CounterVec
	Dropped    prometheus.Counter
}

var _ normalize.Observer = (*Metrics)(nil)

// NewMetrics registers the counters plus go and process collectors on a private registry
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "socialnorm"
	}
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Normalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalized_total",
			Help:      "Records normalized into canonical documents",
		}, []string{"platform", "type"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalize_failures_total",
			Help:      "Records rejected during normalization",
		}, []string{"platform", "reason"}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_dropped_total",
			Help:      "Diagnostics events dropped because the sink buffer was full",
		}),
	}
	m.reg.MustRegister(
		m.Normalized, m.Failures, m.Dropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe implements normalize.Observer
func (m *Metrics) Observe(_ context.Context, d normalize.Diagnostic) {
	n := d.Count
	if n <= 0 {
		n = 1
	}
	m.Normalized.WithLabelValues(string(d.Platform), string(d.Type)).Add(float64(n))
}

// Failed counts a rejected record
func (m *Metrics) Failed(_ context.Context, platform string, err error) {
	m.Failures.WithLabelValues(platform, Reason(err)).Inc()
}

// Registry exposes the private registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
