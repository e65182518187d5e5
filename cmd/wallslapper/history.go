package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dokzlo13/wallslapper/internal/ledger"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	var transitionID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transitions from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.cfg.Ledger.IsEnabled() {
				return errors.New("ledger is disabled in the configuration")
			}
			if limit <= 0 {
				return errors.New("limit must be positive")
			}

			core, err := openCore(opts)
			if err != nil {
				return err
			}
			defer core.Close()

			if core.Ledger == nil {
				return errors.New("ledger is unavailable, see the log for the database error")
			}

			var entries []*ledger.Entry
			if transitionID != "" {
				entries, err = core.Ledger.GetByTransition(transitionID)
			} else {
				entries, err = core.Ledger.Recent(limit)
			}
			if err != nil {
				return fmt.Errorf("failed to read ledger: %w", err)
			}
			return printHistory(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().StringVarP(&transitionID, "transition", "t", "", "Show every event of one transition, oldest first")
	return cmd
}

func printHistory(out io.Writer, entries []*ledger.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No transitions recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTRANSITION\tEVENT\tSOURCE\tFROM\tTO\tDURATION\tSTEPS\tERROR")
	for _, e := range entries {
		from := e.StartColor
		if from == "" {
			from = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			e.Timestamp.Local().Format(time.DateTime),
			e.TransitionID,
			e.EventType,
			e.Source,
			from,
			e.EndColor,
			time.Duration(e.DurationMs)*time.Millisecond,
			e.Steps,
			e.Error,
		)
	}
	return w.Flush()
}
