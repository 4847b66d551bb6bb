package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glintlab/glint/internal/daemon"
)

func init() {
	rootCmd.AddCommand(streakCmd)
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current and longest completion streaks",
	RunE:  runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	snap, err := d.Streaks.Current(time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d day(s) 🔥\n", snap.CurrentStreak)
	fmt.Printf("Longest streak: %d day(s)\n", snap.LongestStreak)
	if snap.LastQualifyingDate != "" {
		fmt.Printf("Last qualifying day: %s\n", snap.LastQualifyingDate)
	}
	return nil
}
