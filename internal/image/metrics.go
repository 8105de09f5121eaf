package image

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes recorded in the lookups counter.
const (
	OutcomeFound   = "found"
	OutcomeNoImage = "no_image"
	OutcomeError   = "error"
)

// Metrics records image lookup counters and latencies.
type Metrics struct {
	registry *prometheus.Registry

	lookupsTotal   *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
}

// NewMetrics creates lookup metrics registered on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "k8sway",
				Name:      "image_lookups_total",
				Help:      "Total number of per-region image lookups by outcome",
			},
			[]string{"region", "outcome"},
		),
		lookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "k8sway",
				Name:      "image_lookup_duration_seconds",
				Help:      "Duration of per-region image lookups in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"region"},
		),
	}
	m.registry.MustRegister(m.lookupsTotal, m.lookupDuration)
	return m
}

// Registry returns the registry holding the lookup metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) record(region, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(region, outcome).Inc()
	m.lookupDuration.WithLabelValues(region).Observe(d.Seconds())
}

// WriteTextfile writes the metrics in the text exposition format, for
// node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
