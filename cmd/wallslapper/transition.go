package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <color>",
		Short: "Set the wallpaper to a color immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, opts, args[0], 0, true)
		},
	}
}

func newTransitionCmd(opts *rootOptions) *cobra.Command {
	var duration time.Duration
	var quiet bool

	cmd := &cobra.Command{
		Use:   "transition <color>",
		Short: "Fade the wallpaper from the current color to another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, opts, args[0], duration, quiet)
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Transition duration (e.g. 30s, 5m)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Disable progress spinner")
	return cmd
}

func runTransition(cmd *cobra.Command, opts *rootOptions, arg string, duration time.Duration, quiet bool) error {
	c, err := parseColorArg(arg)
	if err != nil {
		return err
	}
	if err := checkDuration(duration); err != nil {
		return err
	}

	p := newProgress(quiet || duration == 0, "Transitioning to "+c.String())
	core, err := openCore(opts, p.hook("Transitioning"))
	if err != nil {
		p.stop()
		return err
	}
	defer core.Close()

	err = core.Engine.TransitionToColor(c, duration)
	p.stop()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), c)
	return nil
}
