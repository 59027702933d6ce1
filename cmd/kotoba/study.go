package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/conorfennell/kotoba/internal/audio"
	"github.com/conorfennell/kotoba/internal/deck"
	"github.com/conorfennell/kotoba/internal/study"
	"github.com/conorfennell/kotoba/internal/tui"
)

func newStudyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "study [theme]",
		Short: "Study a theme in the terminal (defaults to the last opened theme)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			key := a.progress.LastTheme()
			if len(args) == 1 {
				key = args[0]
			}
			theme, ok := a.catalog.Theme(key)
			if !ok {
				if key == "" {
					return fmt.Errorf("no theme given and none opened before; run `kotoba themes` to list them")
				}
				return fmt.Errorf("unknown theme %q", key)
			}
			if err := a.progress.OpenTheme(key); err != nil {
				return err
			}

			settings := a.progress.Settings()
			cards := deck.NewBuilder(a.progress).Build(a.catalog.Cards(), key, settings)
			if len(cards) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No cards to study in %s with filter %q.\n", theme.Name, settings.Filter)
				return nil
			}
			sess := study.NewSession(key, cards, a.progress)

			var ctl *audio.Controller
			if command := a.cfg.Audio.AudioArgs(); len(command) > 0 {
				player, err := audio.NewCommandPlayer(command, a.mediaDir())
				if err != nil {
					return err
				}
				ctl = audio.NewController(player)
			}

			slog.Debug("Starting terminal study session", "theme", key, "cards", len(cards))
			return tui.Run(tui.New(sess, theme.Name, a.progress, ctl), tea.WithAltScreen())
		},
	}
}
