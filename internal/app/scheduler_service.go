package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/config"
	"github.com/dokzlo13/wallslapper/internal/ledger"
	"github.com/dokzlo13/wallslapper/internal/schedule"
	"github.com/dokzlo13/wallslapper/internal/scheduler"
)

// SchedulerService wraps the scheduler and related periodic tasks.
type SchedulerService struct {
	cfg       *config.Config
	Scheduler *scheduler.Scheduler
	ledger    *ledger.Ledger
}

// NewSchedulerService creates a new SchedulerService.
func NewSchedulerService(
	cfg *config.Config,
	bus scheduler.Publisher,
	resolver *schedule.Resolver,
	l *ledger.Ledger,
) *SchedulerService {
	return &SchedulerService{
		cfg: cfg,
		Scheduler: scheduler.New(
			cfg.Schedule,
			resolver,
			bus,
			cfg.Daemon.PollInterval.Duration(),
			cfg.Daemon.TransitionDuration(),
		),
		ledger: l,
	}
}

// Start begins the scheduler and related periodic tasks.
// An empty schedule keeps the scheduler idle until one is loaded.
func (s *SchedulerService) Start(ctx context.Context) {
	if len(s.cfg.Schedule) == 0 {
		log.Warn().Msg("No schedule configured, daemon will stay idle until reloaded")
	} else {
		log.Info().Int("entries", len(s.cfg.Schedule)).Msg("Starting scheduler")
		log.Debug().Msg("Schedule:\n" + s.Scheduler.Format())
	}

	go func() {
		if err := s.Scheduler.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Scheduler error")
		}
	}()

	// Ledger cleanup (if ledger is enabled and entries expire)
	if s.ledger != nil && s.cfg.Ledger.RetentionPeriod() > 0 {
		go s.runLedgerCleanup(ctx)
	}
}

// Reload replaces the schedule and re-evaluates it immediately.
func (s *SchedulerService) Reload(sched schedule.Schedule) {
	s.Scheduler.SetSchedule(sched)
	log.Info().Int("entries", len(sched)).Msg("Schedule reloaded")
	log.Debug().Msg("Schedule:\n" + s.Scheduler.Format())
}

// runLedgerCleanup periodically cleans up old ledger entries.
func (s *SchedulerService) runLedgerCleanup(ctx context.Context) {
	retention := s.cfg.Ledger.RetentionPeriod()
	interval := s.cfg.Ledger.CleanupInterval.Duration()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupLedger(retention)
		}
	}
}

func (s *SchedulerService) cleanupLedger(retention time.Duration) {
	deleted, err := s.ledger.DeleteOlderThan(retention)
	if err != nil {
		log.Error().Err(err).Msg("Failed to cleanup old ledger entries")
	} else if deleted > 0 {
		log.Info().Int64("deleted", deleted).Dur("retention", retention).Msg("Cleaned up old ledger entries")
	}
}
