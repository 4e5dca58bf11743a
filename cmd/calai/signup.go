package calai

import (
	"fmt"

	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup <username>",
	Short: "Create a new user and log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := service.SignUp(st, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", sess.Username)
			fmt.Fprintln(cmd.OutOrStdout(), "Set up your profile next: calai onboard")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
}
