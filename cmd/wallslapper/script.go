package main

import (
	"github.com/spf13/cobra"

	"github.com/dokzlo13/wallslapper/internal/app"
)

func newScriptCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "script [file]",
		Short: "Run a Lua script (defaults to the configured script)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.NewCore(opts.cfg, "script")
			if err != nil {
				return err
			}
			defer core.Close()

			svc := app.NewLuaService(core)
			defer svc.Close()

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return svc.Run(app.SignalContext(), path)
		},
	}
}
