package calai

import (
	"fmt"

	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/spf13/cobra"
)

var accountDeleteYes bool

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the logged-in account",
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently delete the logged-in account and all its data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sess, err := requireSession(st)
			if err != nil {
				return err
			}
			if !accountDeleteYes {
				return fmt.Errorf("this deletes all data for %q; re-run with --yes to confirm", sess.Username)
			}
			if err := service.DeleteAccount(st, sess.Username); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", sess.Username)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountDeleteCmd)
	accountDeleteCmd.Flags().BoolVar(&accountDeleteYes, "yes", false, "Confirm deletion")
}
