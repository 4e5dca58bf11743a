package calai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var analyticsJSON bool

const analyticsBarWidth = 30

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show weekly calories, macro split, and health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			report := service.BuildAnalytics(sess.History, time.Now())
			if analyticsJSON {
				// Empty history still gets a real object, not null, so
				// scripted consumers can key off meal_count.
				if report == nil {
					report = &service.AnalyticsReport{Days: []service.DayCalories{}}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			if report == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not enough data.")
				fmt.Fprintln(cmd.OutOrStdout(), "Scan some meals to see your analytics!")
				return nil
			}

			bold := color.New(color.Bold)
			bold.Fprintln(cmd.OutOrStdout(), "Last 7 days")
			for _, day := range report.Days {
				width := day.Calories * analyticsBarWidth / report.MaxDayCalories
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d kcal\n", day.Day, strings.Repeat("█", width), day.Calories)
			}

			bold.Fprintln(cmd.OutOrStdout(), "Macro split")
			fmt.Fprintf(cmd.OutOrStdout(), "Protein %d%% | Carbs %d%% | Fats %d%%\n",
				report.ProteinPercent, report.CarbsPercent, report.FatsPercent)

			bold.Fprintln(cmd.OutOrStdout(), "Health")
			fmt.Fprintf(cmd.OutOrStdout(), "Average score: %.1f / 10 over %d meal(s)\n",
				report.AverageHealthScore, report.MealCount)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "Output JSON")
}
