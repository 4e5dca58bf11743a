package calai

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "calai",
	Short: "calai tracks meals from photos with AI analysis",
	Long:  "calai is a local-first nutrition tracking CLI: snap a meal photo, get an AI calorie and macro estimate, and follow your goals, streaks, and analytics.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// A missing .env is fine; the environment may carry the key directly.
	_ = godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
