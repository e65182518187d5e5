package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dokzlo13/wallslapper/internal/app"
	"github.com/dokzlo13/wallslapper/internal/config"
)

func newDaemonCmd(opts *rootOptions) *cobra.Command {
	var resetState bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Follow the schedule until interrupted (SIGHUP reloads the schedule)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().Str("config", opts.configPath).Msg("Starting wallslapper daemon")

			application, err := app.New(opts.cfg)
			if err != nil {
				return err
			}

			// Handle reset state flag
			if resetState {
				log.Info().Msg("Clearing persisted color (--reset-state)")
				if err := application.Services().Core.ClearState(); err != nil {
					log.Warn().Err(err).Msg("Failed to clear persisted color")
				}
			}

			// Create context that cancels on shutdown signal
			ctx := app.SignalContext()

			if err := application.Start(ctx); err != nil {
				application.Stop()
				return err
			}

			application.WatchReload(ctx, func() (*config.Config, error) {
				return config.Load(opts.configPath)
			})

			// Wait for shutdown
			application.Wait()

			// Graceful shutdown
			return application.Stop()
		},
	}

	cmd.Flags().BoolVar(&resetState, "reset-state", false, "Forget the persisted color on startup")
	return cmd
}
