package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glintlab/glint/internal/daemon"
)

func init() {
	gemsCmd.AddCommand(gemsHistoryCmd)
	rootCmd.AddCommand(gemsCmd)
	rootCmd.AddCommand(resetGemsCmd)
}

var gemsCmd = &cobra.Command{
	Use:   "gems",
	Short: "Show the gem balance and lifetime totals",
	RunE:  runGems,
}

func runGems(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	l, err := d.Gems.Ledger()
	if err != nil {
		return err
	}

	fmt.Printf("Balance:       %d 💎\n", l.Balance)
	fmt.Printf("Total earned:  %d\n", l.TotalEarned)
	fmt.Printf("Total spent:   %d\n", l.TotalSpent)
	return nil
}

var gemsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent gem transactions",
	RunE:  runGemsHistory,
}

func runGemsHistory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.Gems.History(25)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No gem activity yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tKIND\tAMOUNT\tBALANCE\tREASON")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"),
			e.Kind, e.Amount, e.Balance, e.Reason,
		)
	}
	return w.Flush()
}

var resetGemsCmd = &cobra.Command{
	Use:   "reset-gems",
	Short: "Zero the gem ledger (explicit operator action)",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.Gems.Reset("operator reset via CLI"); err != nil {
			return err
		}
		fmt.Println("Gem ledger reset to zero.")
		return nil
	},
}
