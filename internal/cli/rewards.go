package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/glintlab/glint/internal/daemon"
	"github.com/glintlab/glint/internal/domain"
)

func init() {
	rewardsCmd.AddCommand(rewardsBuyCmd)
	rootCmd.AddCommand(rewardsCmd)
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List the reward catalog",
	RunE:  runRewards,
}

func runRewards(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	list, err := d.Rewards.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No rewards defined.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCOST\tSTATE")
	for _, r := range list {
		state := "locked"
		cost := "-"
		if r.Type == domain.RewardPurchasable {
			cost = fmt.Sprintf("%d 💎", r.GemCost)
			state = "available"
			if r.IsPurchased {
				state = "purchased " + r.PurchasedAt.Format("2006-01-02")
			}
		} else if r.IsUnlocked {
			state = "unlocked (" + string(r.ResetFrequency) + ")"
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n", r.ID, r.Icon, r.Name, r.Type, cost, state)
	}
	return w.Flush()
}

var rewardsBuyCmd = &cobra.Command{
	Use:   "buy <reward-id>",
	Short: "Purchase a reward with gems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		r, err := d.Rewards.Purchase(args[0], time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Purchased %s %s for %d 💎. Enjoy!\n", r.Icon, r.Name, r.GemCost)
		return nil
	},
}
