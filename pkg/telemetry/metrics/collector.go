package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"canvas-hq/loom/pkg/config"
)

const (
	namespace = "loom"

	// StatusOK and friends label load outcomes.
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// Collector owns the Prometheus registry and every metric the tool exposes.
// All Record methods are no-ops when metrics are disabled, so call sites
// never need to guard.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	documentMetrics *DocumentMetrics
	cacheMetrics    *CacheMetrics
}

// NewCollector creates a collector. If registry is nil a fresh registry is
// used, keeping tool metrics separate from the global default registry.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		documentMetrics: NewDocumentMetrics(registry),
		cacheMetrics:    NewCacheMetrics(registry),
	}
}

// RecordLoad records one document load.
//
// operation names the pipeline entry point ("document", "sections", "flow",
// "metadata", "lint"), status is one of the Status constants.
func (c *Collector) RecordLoad(operation, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.documentMetrics.RecordLoad(operation, status, duration)
}

// RecordFindings records validation findings by severity.
func (c *Collector) RecordFindings(severity string, count int) {
	if !c.config.Enabled {
		return
	}
	c.documentMetrics.RecordFindings(severity, count)
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit() {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordHit()
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss() {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordMiss()
}

// RecordCacheEvictions records pruned cache entries.
func (c *Collector) RecordCacheEvictions(count int64) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordEvictions(count)
}

// UpdateCacheSize updates the cache entry gauge.
func (c *Collector) UpdateCacheSize(size int) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.UpdateSize(size)
}

// Registry returns the Prometheus registry behind this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CacheRecorder adapts the collector to the cache package's Recorder
// interface.
type CacheRecorder struct {
	collector *Collector
}

// NewCacheRecorder returns a recorder feeding cache outcomes into the
// collector.
func NewCacheRecorder(c *Collector) *CacheRecorder {
	return &CacheRecorder{collector: c}
}

func (r *CacheRecorder) Hit()                 { r.collector.RecordCacheHit() }
func (r *CacheRecorder) Miss()                { r.collector.RecordCacheMiss() }
func (r *CacheRecorder) Eviction(count int64) { r.collector.RecordCacheEvictions(count) }
