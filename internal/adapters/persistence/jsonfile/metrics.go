package jsonfile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records container writes.
type Metrics struct {
	writes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the write metrics and registers them with reg.
// A nil reg leaves them unregistered, which tests use to avoid collisions
// on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pencil",
			Subsystem: "storage",
			Name:      "writes_total",
			Help:      "Container file writes by container and result.",
		}, []string{"container", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pencil",
			Subsystem: "storage",
			Name:      "write_duration_seconds",
			Help:      "Time to serialize and write a container file.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"container"}),
	}

	if reg != nil {
		reg.MustRegister(m.writes, m.duration)
	}

	return m
}

// observeWrite is safe on a nil receiver.
func (m *Metrics) observeWrite(container string, start time.Time, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	m.writes.WithLabelValues(container, result).Inc()
	m.duration.WithLabelValues(container).Observe(time.Since(start).Seconds())
}
