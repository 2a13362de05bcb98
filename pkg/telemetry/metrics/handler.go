package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"canvas-hq/loom/pkg/telemetry/health"
	"canvas-hq/loom/pkg/telemetry/logging"
)

// Handler returns the /metrics endpoint handler in Prometheus exposition
// format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

// Server exposes the collector over HTTP for scraping. It is used by the
// watch command; one-shot commands do not start it.
type Server struct {
	collector *Collector
	logger    *logging.Logger
	srv       *http.Server
}

// ServerInfo is the build identity exposed at /version.
type ServerInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// NewServer creates a metrics server bound to the collector's configured
// listen address. When checker is non-nil the health probe endpoints are
// mounted alongside /metrics.
func NewServer(c *Collector, checker *health.Checker, info ServerInfo, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	if checker != nil {
		health.Register(mux, checker, info.Version, info.Commit, info.BuildTime)
	}

	return &Server{
		collector: c,
		logger:    logger,
		srv: &http.Server{
			Addr:              c.config.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving in a background goroutine. It returns immediately;
// listen failures are logged.
func (s *Server) Start() {
	s.logger.Info("metrics server listening", "address", s.srv.Addr)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}
	return nil
}
