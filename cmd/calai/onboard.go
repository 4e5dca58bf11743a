package calai

import (
	"fmt"

	"github.com/ccorchooo/CalAIFree/internal/model"
	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/spf13/cobra"
)

var (
	onboardAge      int
	onboardWeight   float64
	onboardHeight   float64
	onboardGender   string
	onboardActivity string
	onboardGoal     string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Set up your profile and daily goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			if sess.Profile != nil {
				return fmt.Errorf("profile already exists for %q (run: calai profile set)", sess.Username)
			}
			profile, err := service.BuildProfile(service.GoalInput{
				Age:           onboardAge,
				WeightKg:      onboardWeight,
				HeightCm:      onboardHeight,
				Gender:        onboardGender,
				ActivityLevel: onboardActivity,
				Goal:          onboardGoal,
			})
			if err != nil {
				return err
			}
			if err := st.SaveProfile(sess.Username, profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved for %s\n", sess.Username)
			printGoals(cmd, profile)
			return nil
		})
	},
}

func printGoals(cmd *cobra.Command, p model.UserProfile) {
	fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %d kcal\n", p.CalorieGoal)
	fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %dg | C %dg | F %dg\n", p.MacroGoals.Protein, p.MacroGoals.Carbs, p.MacroGoals.Fats)
}

func init() {
	rootCmd.AddCommand(onboardCmd)
	onboardCmd.Flags().IntVar(&onboardAge, "age", 0, "Age in years")
	onboardCmd.Flags().Float64Var(&onboardWeight, "weight", 0, "Weight in kg")
	onboardCmd.Flags().Float64Var(&onboardHeight, "height", 0, "Height in cm")
	onboardCmd.Flags().StringVar(&onboardGender, "gender", model.GenderMale, "Gender (male or female)")
	onboardCmd.Flags().StringVar(&onboardActivity, "activity", model.ActivityLight, "Activity level (sedentary, light, moderate, very_active, extra_active)")
	onboardCmd.Flags().StringVar(&onboardGoal, "goal", model.GoalMaintain, "Goal (lose, maintain, gain)")
}
