package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/conorfennell/kotoba/internal/domain"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes [query]",
		Short: "List themes with card counts and today's progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				Headers("KEY", "THEME", "CARDS",
					domain.StatusUnknown.Label(), domain.StatusAmbiguous.Label(), domain.StatusKnown.Label(), "TODAY")
			for _, th := range a.catalog.Search(query) {
				counts := a.progress.StatusCounts(a.catalog.CardsInTheme(th.Key))
				t.Row(th.Key, th.Name,
					strconv.Itoa(th.Count),
					strconv.Itoa(counts[domain.StatusUnknown]),
					strconv.Itoa(counts[domain.StatusAmbiguous]),
					strconv.Itoa(counts[domain.StatusKnown]),
					strconv.Itoa(a.progress.TodayCount(th.Key)),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "Today: %d\n", a.progress.TodayTotal())
			return nil
		},
	}
}
