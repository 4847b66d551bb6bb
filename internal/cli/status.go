package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glintlab/glint/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "One-screen summary: gems, streak, achievements, score",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()

	l, err := d.Gems.Ledger()
	if err != nil {
		return err
	}
	streak, err := d.Streaks.Current(now)
	if err != nil {
		return err
	}
	unlocked, err := d.Achievements.UnlockedCount()
	if err != nil {
		return err
	}
	all, err := d.Achievements.List()
	if err != nil {
		return err
	}
	snap, err := d.Performance.Compute(now)
	if err != nil {
		return err
	}

	fmt.Printf("Gems:          %d 💎 (earned %d, spent %d)\n", l.Balance, l.TotalEarned, l.TotalSpent)
	fmt.Printf("Streak:        %d day(s), longest %d\n", streak.CurrentStreak, streak.LongestStreak)
	fmt.Printf("Achievements:  %d/%d unlocked\n", unlocked, len(all))
	fmt.Printf("Performance:   %.1f%% — %s\n", snap.ScorePct, snap.Level)
	return nil
}
