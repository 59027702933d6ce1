// Command kotoba is a sentence flashcard trainer with a web UI and a
// terminal study mode.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conorfennell/kotoba/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kotoba",
		Short:         "Study Japanese/English sentence cards by theme",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(),
		newStudyCmd(),
		newThemesCmd(),
		newSyncCmd(),
	)
	return root
}
