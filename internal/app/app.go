// Package app wires configuration into the transition engine and runs the daemon.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/config"
)

// App is the daemon container that manages all services and their lifecycle.
type App struct {
	cfg      *config.Config
	services *Services
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a new App instance with all services initialized but not started.
func New(cfg *config.Config, opts ...CoreOption) (*App, error) {
	services, err := NewServices(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		services: services,
	}, nil
}

// Services exposes the running services.
func (a *App) Services() *Services {
	return a.services
}

// Start starts all services.
// The provided context is used for cancellation.
func (a *App) Start(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)

	if err := a.services.Start(a.ctx); err != nil {
		a.cancel()
		return err
	}

	log.Info().Msg("wallslapper daemon started")
	return nil
}

// Stop gracefully shuts down all services.
func (a *App) Stop() error {
	log.Info().Msg("Shutting down...")

	if a.cancel != nil {
		a.cancel()
	}

	if a.services != nil {
		return a.services.Stop()
	}

	return nil
}

// Wait blocks until the application context is cancelled.
func (a *App) Wait() {
	if a.ctx != nil {
		<-a.ctx.Done()
	}
}

// LoadFunc loads the configuration again, e.g. from the original path.
type LoadFunc func() (*config.Config, error)

// WatchReload reloads the schedule on SIGHUP until ctx is done.
func (a *App) WatchReload(ctx context.Context, load LoadFunc) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	go func() {
		defer signal.Stop(hup)
		a.reloadOn(ctx, hup, load)
	}()
}

func (a *App) reloadOn(ctx context.Context, signals <-chan os.Signal, load LoadFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-signals:
			log.Info().Str("signal", sig.String()).Msg("Reloading configuration")
			cfg, err := load()
			if err != nil {
				log.Error().Err(err).Msg("Failed to reload configuration, keeping current schedule")
				continue
			}
			a.services.Reload(cfg)
		}
	}
}

// SignalContext creates a context that is cancelled when SIGINT or SIGTERM is received.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	return ctx
}
