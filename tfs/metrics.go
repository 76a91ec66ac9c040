package tfs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-operation counts and latencies. A nil *Metrics
// is a valid, no-op collector, so a Filesystem can always be
// constructed without one. gcsfuse's dependency list is the grounding
// for reaching for prometheus/client_golang here; gcsfuse consumes it
// through an opencensus/otel exporter layer this project doesn't
// need, so TFS registers collectors directly.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	bitmaps    *prometheus.GaugeVec
}

// NewMetrics builds a Metrics collector registered on a fresh
// prometheus.Registry (never the global default registry, so multiple
// independent Filesystems in one process, or in tests, don't collide
// on metric registration).
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tfs",
		Name:      "operations_total",
		Help:      "Count of TFS operations by outcome.",
	}, []string{"op", "result"})

	m.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tfs",
		Name:      "operation_latency_seconds",
		Help:      "Wall-clock latency of TFS operations, including simulated storage latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	m.bitmaps = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tfs",
		Name:      "bitmap_taken",
		Help:      "Number of TAKEN slots in a bitmap, sampled on demand.",
	}, []string{"table"})

	m.registry.MustRegister(m.operations, m.latency, m.bitmaps)
	return m
}

// Registry exposes the underlying registry, e.g. for promhttp.Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) setBitmap(table string, taken int) {
	if m == nil {
		return
	}
	m.bitmaps.WithLabelValues(table).Set(float64(taken))
}
