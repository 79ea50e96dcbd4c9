// Package jobs runs the background work of the site process.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CacheWarmer precomputes catalog views.
type CacheWarmer interface {
	WarmCache(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	warmer  CacheWarmer
	log     *zap.Logger
	timeout time.Duration
}

// NewScheduler registers the cache warm job on schedule, a six field cron
// expression (seconds first).
func NewScheduler(schedule string, warmer CacheWarmer, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		warmer:  warmer,
		log:     log,
		timeout: time.Minute,
	}

	if _, err := s.cron.AddFunc(schedule, s.warm); err != nil {
		return nil, fmt.Errorf("cache warm schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("cron scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for a running job, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("cron scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow warms the cache once, outside the schedule.
func (s *Scheduler) RunNow() {
	s.warm()
}

func (s *Scheduler) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.warmer.WarmCache(ctx)
	if err != nil {
		s.log.Error("cache warm failed", zap.Error(err), zap.Int("views", n))
		return
	}
	s.log.Debug("cache warm job finished", zap.Int("views", n), zap.Duration("took", time.Since(start)))
}
