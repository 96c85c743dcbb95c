package application

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler drives continuous mode: an immediate first pass, then one pass
// per interval until the context is cancelled. A pass that fails entirely
// (e.g. the inventory fetch) is logged and skipped; it never stops the loop.
// Passes never overlap: a tick that fires while the previous pass is still
// running is dropped, so each pass completes fetch-plan-execute before the
// next begins.
type Scheduler struct {
	service  *CleanupService
	interval time.Duration
	opts     PassOptions
	cron     *cron.Cron
	logger   zerolog.Logger
}

func NewScheduler(service *CleanupService, interval time.Duration, opts PassOptions, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		service:  service,
		interval: interval,
		opts:     opts,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, then drains any in-flight pass before
// returning. Cancellation during the inter-pass wait never starts a new
// pass; an interrupted pass is simply recomputed from fresh inventory on
// the next process start.
func (s *Scheduler) Run(ctx context.Context) error {
	s.runPass(ctx)

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.runPass(ctx)
	}); err != nil {
		return fmt.Errorf("schedule cleanup pass: %w", err)
	}

	s.cron.Start()
	s.logger.Info().Dur("interval", s.interval).Msg("polling for excess recordings")

	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()
	s.logger.Info().Msg("scheduler stopped")

	return nil
}

func (s *Scheduler) runPass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	summary, err := s.service.RunPass(ctx, s.opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("cleanup pass failed")
		return
	}

	s.logger.Info().
		Int("considered", summary.Considered).
		Int("attempted", summary.Attempted).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("cleanup pass complete")
}
