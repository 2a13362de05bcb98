// Package telemetry provides observability for the loom toolkit.
//
// # Components
//
//   - logging: structured logging over log/slog with context-carried
//     document and operation fields
//   - metrics: Prometheus metrics for document loads, validation
//     findings, and the assembly cache
//   - health: liveness and readiness probes for the watch command
//
// # Usage
//
//	logger, _ := logging.New(logging.Config{Level: "info", Format: "text"})
//	logger.Info("document reassembled", "document", path)
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	collector.RecordLoad("document", metrics.StatusOK, elapsed)
//
// One-shot commands use logging only; the watch command additionally
// serves /metrics, /health, /ready, and /version on the configured
// listen address.
package telemetry
