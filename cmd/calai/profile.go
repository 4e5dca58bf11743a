package calai

import (
	"fmt"

	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/spf13/cobra"
)

var (
	profileSetAge      int
	profileSetWeight   float64
	profileSetHeight   float64
	profileSetGender   string
	profileSetActivity string
	profileSetGoal     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile and goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			if err := requireProfile(sess); err != nil {
				return err
			}
			p := *sess.Profile
			fmt.Fprintf(cmd.OutOrStdout(), "User: %s\n", sess.Username)
			fmt.Fprintf(cmd.OutOrStdout(), "Age: %d | Weight: %.1f kg | Height: %.1f cm\n", p.Age, p.Weight, p.Height)
			fmt.Fprintf(cmd.OutOrStdout(), "Gender: %s | Activity: %s | Goal: %s\n", p.Gender, p.ActivityLevel, service.DeriveGoal(p))
			printGoals(cmd, p)
			return nil
		})
	},
}

// profile set recomputes the whole profile from the merged inputs; goals are
// always derived, never edited directly.
var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields and recompute goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			if err := requireProfile(sess); err != nil {
				return err
			}
			in := service.GoalInput{
				Age:           sess.Profile.Age,
				WeightKg:      sess.Profile.Weight,
				HeightCm:      sess.Profile.Height,
				Gender:        sess.Profile.Gender,
				ActivityLevel: sess.Profile.ActivityLevel,
				Goal:          service.DeriveGoal(*sess.Profile),
			}
			flags := cmd.Flags()
			if flags.Changed("age") {
				in.Age = profileSetAge
			}
			if flags.Changed("weight") {
				in.WeightKg = profileSetWeight
			}
			if flags.Changed("height") {
				in.HeightCm = profileSetHeight
			}
			if flags.Changed("gender") {
				in.Gender = profileSetGender
			}
			if flags.Changed("activity") {
				in.ActivityLevel = profileSetActivity
			}
			if flags.Changed("goal") {
				in.Goal = profileSetGoal
			}
			profile, err := service.BuildProfile(in)
			if err != nil {
				return err
			}
			if err := st.SaveProfile(sess.Username, profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated for %s\n", sess.Username)
			printGoals(cmd, profile)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileSetCmd.Flags().IntVar(&profileSetAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileSetWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().Float64Var(&profileSetHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().StringVar(&profileSetGender, "gender", "", "Gender (male or female)")
	profileSetCmd.Flags().StringVar(&profileSetActivity, "activity", "", "Activity level")
	profileSetCmd.Flags().StringVar(&profileSetGoal, "goal", "", "Goal (lose, maintain, gain)")
}
