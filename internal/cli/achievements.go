package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glintlab/glint/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "List achievements with unlock state",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	list, err := d.Achievements.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No achievements defined.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tREWARD\tPROGRESS\tSTATE")
	for _, a := range list {
		state := "locked"
		switch {
		case a.IsRevoked:
			state = "revoked"
		case a.IsUnlocked:
			state = "unlocked " + a.UnlockedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%d 💎\t%.0f/%.0f\t%s\n",
			a.ID, a.Icon, a.Name, a.Category, a.GemReward,
			a.Condition.Progress, a.Condition.Target, state,
		)
	}
	return w.Flush()
}
