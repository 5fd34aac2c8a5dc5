package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fiiradar",
	Short: "FII screener over Fundamentus data",
	Long: `fiiradar - Brazilian real estate fund (FII) screener

Fetches the Fundamentus result table, normalizes the Brazilian-locale
numbers, validates the snapshot and scores every fund on five quality
checks.

Usage:
  go run ./cmd/fiiradar [command]

Examples:
  go run ./cmd/fiiradar api
  go run ./cmd/fiiradar fetch
  go run ./cmd/fiiradar screen --min-score 4
  go run ./cmd/fiiradar similar HGLG11`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
