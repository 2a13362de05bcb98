// Package metrics exposes Prometheus metrics for the document pipeline:
// load counts and latencies per operation, validation findings by severity,
// and assembly cache hits, misses, size, and evictions. The Collector owns
// a private registry; NewServer serves it at /metrics for long-running
// commands.
package metrics
