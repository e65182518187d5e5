package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newPinwheelCmd(opts *rootOptions) *cobra.Command {
	var duration time.Duration
	var quiet bool

	cmd := &cobra.Command{
		Use:   "pinwheel <palette>",
		Short: "Transition through every color of a configured palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDuration(duration); err != nil {
				return err
			}

			name := args[0]
			log.Debug().
				Strs("palettes", opts.cfg.PaletteNames()).
				Int("schedule_entries", len(opts.cfg.Schedule)).
				Msg("Loaded config")

			if _, ok := opts.cfg.Palette(name); !ok {
				return fmt.Errorf("palette %q not found (available: %s)", name, strings.Join(opts.cfg.PaletteNames(), ", "))
			}

			p := newProgress(quiet, "Pinwheel "+name)
			core, err := openCore(opts, p.hook("Pinwheel "+name))
			if err != nil {
				p.stop()
				return err
			}
			defer core.Close()

			err = core.Engine.RunPinwheel(opts.cfg, name, duration)
			p.stop()
			return err
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Duration of each color's transition")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Disable progress spinner")
	return cmd
}
