package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/moodmate/internal/version"
)

// tuiCmd is the check-in flow under an explicit name.
var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"checkin"},
	Short:   "Open the interactive check-in",
	Args:    cobra.NoArgs,
	RunE:    runCheckin,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(out(cmd), version.Info())
	},
}
