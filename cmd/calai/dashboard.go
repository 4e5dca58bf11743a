package calai

import (
	"fmt"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's intake against your goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			if err := requireProfile(sess); err != nil {
				return err
			}
			now := time.Now()
			today := service.FilterDay(sess.History, now)
			yesterday := service.FilterDay(sess.History, now.AddDate(0, 0, -1))
			consumed := service.SumCalories(today)
			macros := service.SumMacros(today)
			goal := *sess.Profile

			bold := color.New(color.Bold)
			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)

			bold.Fprintf(cmd.OutOrStdout(), "Today — %s\n", now.Format("Monday, January 2"))
			fmt.Fprintf(cmd.OutOrStdout(), "Consumed: %d / %d kcal\n", consumed, goal.CalorieGoal)
			remaining := goal.CalorieGoal - consumed
			if remaining >= 0 {
				green.Fprintf(cmd.OutOrStdout(), "Remaining: %d kcal\n", remaining)
			} else {
				red.Fprintf(cmd.OutOrStdout(), "Over by: %d kcal\n", -remaining)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Protein: %d / %d g\n", macros.Protein, goal.MacroGoals.Protein)
			fmt.Fprintf(cmd.OutOrStdout(), "Carbs:   %d / %d g\n", macros.Carbs, goal.MacroGoals.Carbs)
			fmt.Fprintf(cmd.OutOrStdout(), "Fats:    %d / %d g\n", macros.Fats, goal.MacroGoals.Fats)
			fmt.Fprintf(cmd.OutOrStdout(), "Meals today: %d | Yesterday: %d kcal\n", len(today), service.SumCalories(yesterday))
			if sess.Streak.StreakCount > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d day(s) 🔥\n", sess.Streak.StreakCount)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
