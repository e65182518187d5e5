package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/config"
	"github.com/dokzlo13/wallslapper/internal/eventbus"
)

// Services is a container for the daemon's services.
// It manages service initialization order and dependencies.
type Services struct {
	cfg *config.Config

	// Core infrastructure
	Core *Core
	Bus  *eventbus.Bus

	// High-level services
	Scheduler *SchedulerService
	Health    *HealthService
	Webhook   *WebhookService
}

// NewServices creates all services with proper dependency injection.
func NewServices(cfg *config.Config, opts ...CoreOption) (*Services, error) {
	s := &Services{cfg: cfg}

	core, err := NewCore(cfg, "daemon", opts...)
	if err != nil {
		return nil, err
	}
	s.Core = core

	// One worker: transitions never overlap
	s.Bus = eventbus.NewWithConfig(1, cfg.Daemon.QueueSize)

	s.Scheduler = NewSchedulerService(cfg, s.Bus, core.Resolver, core.Ledger)
	s.Health = NewHealthService(cfg, core.Engine)
	s.Webhook = NewWebhookService(cfg, s.Bus)

	return s, nil
}

// Start registers the transition handlers and starts background services.
func (s *Services) Start(ctx context.Context) error {
	s.Bus.Subscribe(eventbus.EventTypeTransition, s.handleTransition)
	s.Bus.Subscribe(eventbus.EventTypePinwheel, s.handlePinwheel)

	s.Scheduler.Start(ctx)
	s.Health.Start(ctx)
	s.Webhook.Start(ctx)

	return nil
}

func (s *Services) handleTransition(e eventbus.Event) {
	log.Info().
		Str("color", e.Color.String()).
		Dur("duration", e.Duration).
		Str("source", e.Source).
		Msg("Starting scheduled transition")

	if err := s.Core.Engine.TransitionToColor(e.Color, e.Duration); err != nil {
		log.Error().Err(err).Str("color", e.Color.String()).Msg("Transition failed")
		s.Scheduler.Scheduler.Resync()
	}
}

func (s *Services) handlePinwheel(e eventbus.Event) {
	if err := s.Core.Engine.RunPinwheel(s.cfg, e.Palette, e.Duration); err != nil {
		log.Error().Err(err).Str("palette", e.Palette).Msg("Pinwheel failed")
	}
}

// Reload applies the schedule from a freshly loaded configuration.
// Other settings take effect on restart.
func (s *Services) Reload(cfg *config.Config) {
	s.Scheduler.Reload(cfg.Schedule)
}

// Stop drains the bus and releases resources.
func (s *Services) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
	defer cancel()

	if s.Bus != nil {
		s.Bus.Close(ctx)
	}
	s.Close()
	return nil
}

// Close releases all resources.
func (s *Services) Close() {
	if s.Core != nil {
		s.Core.Close()
	}
}
