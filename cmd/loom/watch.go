package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"canvas-hq/loom/pkg/cache"
	"canvas-hq/loom/pkg/cli"
	"canvas-hq/loom/pkg/config"
	"canvas-hq/loom/pkg/telemetry/health"
	"canvas-hq/loom/pkg/telemetry/logging"
	"canvas-hq/loom/pkg/telemetry/metrics"
	"canvas-hq/loom/pkg/watcher"
)

var watchFlags struct {
	root   string
	dryRun bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a workspace and keep the assembly cache warm",
	Long: `Watch a workspace for document changes. Each changed document is
reassembled and cached, so subsequent loads are instant; removed
documents are dropped from the cache.

With the sqlite backend the cache survives restarts. A cron-driven
retention job prunes stale entries, and a Prometheus endpoint exposes
load and cache metrics when enabled.

Examples:
  # Watch with defaults
  loom watch --root plans/

  # Watch with a config file
  loom watch --config loom.yaml

  # Validate config without starting
  loom watch --config loom.yaml --dry-run`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.root, "root", "", "override workspace root")
	watchCmd.Flags().BoolVar(&watchFlags.dryRun, "dry-run", false, "validate config without starting")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchFlags.root != "" {
		cfg.Workspace.Root = watchFlags.root
	}
	if cfg.Workspace.Root == "" {
		return cli.NewConfigError("workspace.root", "no workspace to watch: set --root or workspace.root")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if watchFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Loom v%s\n", Version)
	fmt.Printf("Watching %s\n", cfg.Workspace.Root)

	// Cache backend
	backend, err := newCacheBackend(cfg, logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	// Metrics and health probes
	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
	var metricsServer *metrics.Server
	if cfg.Telemetry.Metrics.Enabled {
		checker := health.New(0)
		checker.RegisterCheck("workspace", func(ctx context.Context) error {
			_, err := os.Stat(cfg.Workspace.Root)
			return err
		})
		checker.RegisterCheck("cache", func(ctx context.Context) error {
			_, err := backend.Len(ctx)
			return err
		})

		metricsServer = metrics.NewServer(collector, checker, metrics.ServerInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildTime: BuildDate,
		}, logger)
		metricsServer.Start()
		fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.Telemetry.Metrics.ListenAddress)
		fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Telemetry.Metrics.ListenAddress)
	}

	assemblies := cache.New(backend, newLoader(cfg),
		cache.WithRecorder(metrics.NewCacheRecorder(collector)),
		cache.WithLogger(logger),
	)
	defer assemblies.Close()
	fmt.Printf("✓ Assembly cache initialized (%s backend)\n", cfg.Cache.Backend)

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	// Retention
	if cfg.Cache.Retention.Enabled {
		scheduler := cache.NewScheduler(assemblies, cfg.Cache.Retention, logger)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer scheduler.Stop()
		fmt.Printf("✓ Retention scheduler started (%s)\n", cfg.Cache.Retention.Schedule)
	}

	// Watcher
	w, err := watcher.New(&watcher.Config{
		Root:       cfg.Workspace.Root,
		Debounce:   cfg.Watcher.Debounce,
		Extensions: cfg.Workspace.Extensions,
		SkipHidden: true,
	}, logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Watch(ctx, func(path string, removed bool) {
			reloadDocument(ctx, assemblies, collector, logger, path, removed)
		})
	}()

	fmt.Println("\nPress Ctrl+C to stop")

	select {
	case err := <-errChan:
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
	case <-ctx.Done():
		fmt.Println("\nShutting down...")
	}

	if err := w.Stop(); err != nil {
		logger.Error("watcher shutdown failed", "error", err)
	}
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics shutdown failed", "error", err)
		}
	}

	fmt.Println("✓ Stopped")
	return nil
}

// newCacheBackend builds the configured cache backend. Disabled caching
// still gets an unbounded memory backend so the watch loop stays uniform.
func newCacheBackend(cfg *config.Config, logger *logging.Logger) (cache.Backend, error) {
	if !cfg.Cache.Enabled {
		return cache.NewMemoryBackend(0), nil
	}
	switch cfg.Cache.Backend {
	case "sqlite":
		return cache.NewSQLiteBackend(cfg.Cache.SQLite, logger)
	case "memory", "":
		return cache.NewMemoryBackend(cfg.Cache.MaxEntries), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}

// reloadDocument handles one settled change notification.
func reloadDocument(ctx context.Context, assemblies *cache.Cache, collector *metrics.Collector, logger *logging.Logger, path string, removed bool) {
	if removed {
		if err := assemblies.Invalidate(ctx, path); err != nil {
			logger.Warn("failed to drop cache entry", "document", path, "error", err)
		} else {
			logger.Info("document removed", "document", path)
		}
		return
	}

	start := time.Now()
	if _, err := assemblies.Load(ctx, path); err != nil {
		collector.RecordLoad("document", metrics.StatusInvalid, time.Since(start))
		logger.Warn("document failed to assemble", "document", path, "error", err)
		return
	}
	collector.RecordLoad("document", metrics.StatusOK, time.Since(start))
	logger.Info("document reassembled", "document", path, "elapsed", time.Since(start))
}
