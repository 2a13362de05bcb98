package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"canvas-hq/loom/pkg/config"
	"canvas-hq/loom/pkg/telemetry/logging"
)

// Scheduler runs scheduled cache pruning from a cron expression, e.g.
// "0 3 * * *" for daily at 3 AM.
type Scheduler struct {
	cache   *Cache
	cfg     config.RetentionConfig
	cron    *cron.Cron
	logger  *logging.Logger
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a retention scheduler for the cache.
func NewScheduler(cache *Cache, cfg config.RetentionConfig, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Scheduler{
		cache:  cache,
		cfg:    cfg,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins scheduled pruning. A disabled or scheduleless configuration
// starts nothing and returns nil.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.Enabled || s.cfg.Schedule == "" {
		s.logger.Debug("cache retention not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.cfg.Schedule, err)
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runPruning(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule cache pruning: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("cache retention scheduler started",
		"schedule", s.cfg.Schedule,
		"max_age", s.cfg.MaxAge,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runPruning executes one pruning cycle.
func (s *Scheduler) runPruning(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.MaxAge)

	deleted, err := s.cache.Prune(ctx, cutoff)
	if err != nil {
		s.logger.Error("scheduled cache pruning failed", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("scheduled cache pruning completed", "deleted", deleted)
	}
}

// Stop halts scheduled pruning and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Debug("cache retention scheduler stopped")
}
