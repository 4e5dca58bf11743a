package calai

import (
	"fmt"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in as an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := service.Login(st, args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Username)
			if sess.Profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet. Run: calai onboard")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
