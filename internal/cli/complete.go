package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glintlab/glint/internal/app/engagement"
	"github.com/glintlab/glint/internal/daemon"
	"github.com/glintlab/glint/internal/domain"
)

func init() {
	completeRoutineCmd.Flags().StringVar(&completeReflection, "reflection", "", "Attach a reflection (doubles the gem grant)")
	completeTaskCmd.Flags().StringVar(&completePriority, "priority", "medium", "Task priority: low, medium, high")
	completePomodoroCmd.Flags().IntVar(&completeMinutes, "minutes", 25, "Session length in minutes")

	completeCmd.AddCommand(completeRoutineCmd)
	completeCmd.AddCommand(completeTaskCmd)
	completeCmd.AddCommand(completePomodoroCmd)
	rootCmd.AddCommand(completeCmd)
}

var (
	completeReflection string
	completePriority   string
	completeMinutes    int
)

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Record a completion event (grants gems, re-evaluates unlocks)",
}

var completeRoutineCmd = &cobra.Command{
	Use:   "routine <routine-id>",
	Short: "Mark a routine done for today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := d.Tracker.CompleteRoutine(args[0], completeReflection, time.Now())
		if err != nil {
			return err
		}
		printEventResult(res)
		return nil
	},
}

var completeTaskCmd = &cobra.Command{
	Use:   "task <task-id>",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := d.Tracker.CompleteTask(args[0], domain.TaskPriority(completePriority), time.Now())
		if err != nil {
			return err
		}
		printEventResult(res)
		return nil
	},
}

var completePomodoroCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Record a finished focus session",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := d.Tracker.CompletePomodoro(completeMinutes, time.Now())
		if err != nil {
			return err
		}
		printEventResult(res)
		return nil
	},
}

func printEventResult(res *engagement.EventResult) {
	if res.GemsGranted > 0 {
		fmt.Printf("+%d 💎\n", res.GemsGranted)
	}
	for _, a := range res.UnlockedAchievements {
		fmt.Printf("Achievement unlocked: %s %s (+%d 💎)\n", a.Icon, a.Name, a.GemReward)
	}
	for _, r := range res.UnlockedRewards {
		fmt.Printf("Reward unlocked: %s %s\n", r.Icon, r.Name)
	}
}
