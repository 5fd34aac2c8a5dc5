package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brfin/fiiradar/internal/contracts"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and validate the fund table once",
	Long: `Downloads the Fundamentus result table, normalizes and validates it,
and prints a summary of the snapshot.

Example:
  go run ./cmd/fiiradar fetch`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	_, _, p, err := setup()
	if err != nil {
		return err
	}

	table, err := p.GetTable(context.Background(), true)
	if err != nil {
		var verr *contracts.ValidationError
		if errors.As(err, &verr) {
			fmt.Println("Snapshot rejected by validation:")
			for _, reason := range verr.Reasons {
				fmt.Printf("  - %s: %s\n", reason.Code, reason.Detail)
			}
		}
		return err
	}

	scoreCounts := make(map[int]int)
	for _, fund := range table.Funds {
		scoreCounts[fund.Score]++
	}

	fmt.Printf("Fetched %d funds at %s (schema %s)\n",
		len(table.Funds), table.FetchedAt.Format("2006-01-02 15:04:05"), table.SchemaVersion)
	for score := 5; score >= 0; score-- {
		if scoreCounts[score] > 0 {
			fmt.Printf("  score %d: %d funds\n", score, scoreCounts[score])
		}
	}

	return nil
}
