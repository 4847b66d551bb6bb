package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glintlab/glint/internal/daemon"
)

func init() {
	scoreCmd.Flags().BoolVar(&scoreRecord, "record", false, "Persist today's snapshot into the history")
	rootCmd.AddCommand(scoreCmd)
}

var scoreRecord bool

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the five domain scores and the overall excellence level",
	RunE:  runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	snap, err := d.Performance.Compute(now)
	if err != nil {
		return err
	}
	if scoreRecord {
		if snap, err = d.Performance.RecordSnapshot(now); err != nil {
			return err
		}
	}

	fmt.Printf("Overall: %.1f%% — %s\n\n", snap.ScorePct, snap.Level)
	fmt.Printf("  Tasks:         %5.1f\n", snap.Domains.Tasks)
	fmt.Printf("  Routines:      %5.1f\n", snap.Domains.Routines)
	fmt.Printf("  Applications:  %5.1f\n", snap.Domains.Applications)
	fmt.Printf("  Finances:      %5.1f\n", snap.Domains.Finances)
	fmt.Printf("  Time:          %5.1f\n", snap.Domains.Time)
	fmt.Printf("\n%s\n", snap.Suggestion)
	if scoreRecord {
		fmt.Printf("\nSnapshot recorded for %s.\n", snap.Day)
	}
	return nil
}
