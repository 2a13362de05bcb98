package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks the assembly cache.
//
// Metrics:
//   - loom_cache_hits_total
//   - loom_cache_misses_total
//   - loom_cache_entries
//   - loom_cache_evictions_total
type CacheMetrics struct {
	hitsTotal      prometheus.Counter
	missesTotal    prometheus.Counter
	entries        prometheus.Gauge
	evictionsTotal prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics.
func NewCacheMetrics(registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of assembly cache hits",
		}),

		missesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of assembly cache misses",
		}),

		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Current number of cached assemblies",
		}),

		evictionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of cache entries removed by pruning",
		}),
	}

	registry.MustRegister(
		cm.hitsTotal,
		cm.missesTotal,
		cm.entries,
		cm.evictionsTotal,
	)

	return cm
}

// RecordHit records a cache hit.
func (cm *CacheMetrics) RecordHit() {
	cm.hitsTotal.Inc()
}

// RecordMiss records a cache miss.
func (cm *CacheMetrics) RecordMiss() {
	cm.missesTotal.Inc()
}

// RecordEvictions adds pruned entries to the eviction counter.
func (cm *CacheMetrics) RecordEvictions(count int64) {
	if count <= 0 {
		return
	}
	cm.evictionsTotal.Add(float64(count))
}

// UpdateSize sets the current cache size gauge.
func (cm *CacheMetrics) UpdateSize(size int) {
	cm.entries.Set(float64(size))
}
