package calai

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyJSON     bool
	historyClearYes bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage logged meals",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals grouped by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			groups := service.GroupByDay(sess.History, time.Now())
			if historyJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(groups)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meals logged yet. Run: calai log <image.jpg>")
				return nil
			}
			bold := color.New(color.Bold)
			for _, g := range groups {
				bold.Fprintf(cmd.OutOrStdout(), "%s — %d kcal\n", g.Label, g.TotalCalories)
				for _, item := range g.Items {
					fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s  %d kcal  (P %dg | C %dg | F %dg)\n",
						item.ID, item.Analysis.MealName, item.Analysis.Calories,
						item.Analysis.Macros.Protein, item.Analysis.Macros.Carbs, item.Analysis.Macros.Fats)
				}
			}
			return nil
		})
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one logged meal by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			remaining, removed := service.DeleteItem(sess.History, args[0])
			if !removed {
				return fmt.Errorf("no meal with id %q", args[0])
			}
			if err := st.SaveHistory(sess.Username, remaining); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			if !historyClearYes {
				return fmt.Errorf("this deletes all %d logged meal(s); re-run with --yes to confirm", len(sess.History))
			}
			if err := st.DeleteHistory(sess.Username); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "Output JSON")
	historyClearCmd.Flags().BoolVar(&historyClearYes, "yes", false, "Confirm deletion")
}
