package calai

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <image.jpg>",
	Short: "Analyze a meal photo and add it to your history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jpeg, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			if err := requireProfile(sess); err != nil {
				return err
			}
			client, err := newGeminiClient(st)
			if err != nil {
				return err
			}
			result, err := service.LogMeal(cmd.Context(), st, client, sess.Username, jpeg, time.Now())
			if err != nil {
				return err
			}
			a := result.Item.Analysis
			bold := color.New(color.Bold)
			bold.Fprintf(cmd.OutOrStdout(), "%s\n", a.MealName)
			if len(a.Ingredients) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Ingredients: %s\n", strings.Join(a.Ingredients, ", "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d kcal\n", a.Calories)
			fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %dg | C %dg | F %dg\n", a.Macros.Protein, a.Macros.Carbs, a.Macros.Fats)
			fmt.Fprintf(cmd.OutOrStdout(), "Health score: %d/10\n", a.HealthScore)
			if a.Reasoning != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Reasoning: %s\n", a.Reasoning)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d day(s) 🔥\n", result.Streak.StreakCount)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
