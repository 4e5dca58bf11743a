package calai

import (
	"fmt"
	"os"

	"github.com/ccorchooo/CalAIFree/internal/service"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			report, err := service.RunDoctor(st, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Records: %d\n", report.Records)
			fmt.Fprintf(cmd.OutOrStdout(), "Corrupt records: %d\n", report.CorruptRecords)
			fmt.Fprintf(cmd.OutOrStdout(), "Unknown records: %d\n", report.UnknownRecords)
			if os.Getenv("GEMINI_API_KEY") == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Warning: GEMINI_API_KEY is not set; log and chat will fail")
			}
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed records: %d\n", report.RemovedRecords)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(st, false)
				if err != nil {
					return err
				}
			}
			if report.CorruptRecords > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove undecodable records")
}
