package calai

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print calai version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "calai %s\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
