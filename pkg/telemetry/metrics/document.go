package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DocumentMetrics tracks the document pipeline.
//
// Metrics:
//   - loom_document_loads_total: loads by operation and status
//   - loom_document_load_duration_seconds: load latency by operation
//   - loom_validation_findings_total: validation findings by severity
type DocumentMetrics struct {
	loadsTotal    *prometheus.CounterVec
	loadDuration  *prometheus.HistogramVec
	findingsTotal *prometheus.CounterVec
}

// NewDocumentMetrics creates and registers document metrics.
func NewDocumentMetrics(registry *prometheus.Registry) *DocumentMetrics {
	dm := &DocumentMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "document_loads_total",
				Help:      "Total number of document loads",
			},
			[]string{"operation", "status"},
		),

		loadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "document_load_duration_seconds",
				Help:      "Document load latency in seconds",
				// Loads are local file work, so sub-millisecond to
				// a few hundred milliseconds.
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"operation"},
		),

		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_findings_total",
				Help:      "Total validation findings by severity",
			},
			[]string{"severity"},
		),
	}

	registry.MustRegister(
		dm.loadsTotal,
		dm.loadDuration,
		dm.findingsTotal,
	)

	return dm
}

// RecordLoad records one load with its outcome and latency.
func (dm *DocumentMetrics) RecordLoad(operation, status string, duration time.Duration) {
	dm.loadsTotal.WithLabelValues(operation, status).Inc()
	dm.loadDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFindings adds count findings for a severity ("error" or "warning").
func (dm *DocumentMetrics) RecordFindings(severity string, count int) {
	if count <= 0 {
		return
	}
	dm.findingsTotal.WithLabelValues(severity).Add(float64(count))
}
