package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/kotoba/internal/source"
)

func newSyncCmd() *cobra.Command {
	var prune bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Update the card repository and reconcile stored progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := source.Reconcile(a.progress, a.catalog, prune)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d cards in %d themes from %s\n", report.Cards, report.Themes, a.dataPath)
			switch {
			case report.Pruned > 0:
				fmt.Fprintf(out, "Pruned progress for %d removed cards\n", report.Pruned)
			case report.Orphans > 0:
				fmt.Fprintf(out, "%d stored entries refer to removed cards; run with --prune to drop them\n", report.Orphans)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete progress for cards no longer in the data")
	return cmd
}
