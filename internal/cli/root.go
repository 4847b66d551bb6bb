// Package cli implements the Glint command-line interface using Cobra.
// Each subcommand maps to an engine capability (serve, gems, streak, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "glint",
	Short: "Glint — personal productivity scoring engine",
	Long: `Glint is the rewards, achievement and performance scoring engine
behind the dashboard: a gem ledger, unlockable achievements, conditional
and purchasable rewards, day streaks, and a five-domain excellence score.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
