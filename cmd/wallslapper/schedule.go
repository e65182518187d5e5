package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dokzlo13/wallslapper/internal/schedule"
)

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	var duration time.Duration
	var printOnly bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Apply the color the schedule says is active now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDuration(duration); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(opts.cfg.Schedule) == 0 {
				fmt.Fprintln(out, "No schedule configured")
				return nil
			}

			p := newProgress(quiet || printOnly || duration == 0, "Following schedule")
			core, err := openCore(opts, p.hook("Following schedule"))
			if err != nil {
				p.stop()
				return err
			}
			defer core.Close()

			if printOnly {
				fmt.Fprint(out, schedule.Format(opts.cfg.Schedule, core.Resolver.Now()))
				return nil
			}

			c, ok := core.Resolver.Resolve(opts.cfg.Schedule)
			if !ok {
				p.stop()
				fmt.Fprintln(out, "No entry active yet today")
				return nil
			}

			err = core.Engine.TransitionToColor(c, duration)
			p.stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, c)
			return nil
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Transition duration (e.g. 30s, 5m)")
	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print today's schedule without applying it")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Disable progress spinner")
	return cmd
}
