package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dokzlo13/wallslapper/internal/state"
)

func newCurrentCmd(opts *rootOptions) *cobra.Command {
	var clearState bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the last applied color",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(opts)
			if err != nil {
				return err
			}
			defer core.Close()

			if fs, ok := core.Store.(*state.FileStore); ok {
				log.Debug().Str("path", fs.Path()).Msg("Using state file")
			}

			out := cmd.OutOrStdout()
			if clearState {
				if err := core.ClearState(); err != nil {
					return err
				}
				fmt.Fprintln(out, "cleared")
				return nil
			}

			c, ok := core.Engine.Current()
			if !ok {
				fmt.Fprintln(out, "none")
				return nil
			}
			fmt.Fprintln(out, c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearState, "clear", false, "Forget the persisted color so the next transition is instant")
	return cmd
}
