package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/config"
	"github.com/dokzlo13/wallslapper/internal/webhook"
)

// WebhookService wraps the webhook HTTP server.
type WebhookService struct {
	cfg    *config.Config
	server *webhook.Server
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(cfg *config.Config, bus webhook.Publisher) *WebhookService {
	if !cfg.Webhook.Enabled {
		return &WebhookService{cfg: cfg}
	}

	return &WebhookService{
		cfg:    cfg,
		server: webhook.NewServer(cfg.Webhook.Host, cfg.Webhook.Port, bus, cfg),
	}
}

// Start begins the webhook server if enabled.
func (s *WebhookService) Start(ctx context.Context) {
	if s.server == nil {
		return
	}

	go func() {
		if err := s.server.Run(ctx, s.cfg.GetShutdownTimeout()); err != nil {
			log.Error().Err(err).Msg("Webhook server error")
		}
	}()
}
