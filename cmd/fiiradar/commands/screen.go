package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brfin/fiiradar/internal/scoring"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Score the fund table and print the screener",
	Long: `Scores every fund on the five quality checks and prints the ones at or
above the minimum score.

Example:
  go run ./cmd/fiiradar screen
  go run ./cmd/fiiradar screen --min-score 4`,
	RunE: runScreen,
}

var screenMinScore int

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().IntVar(&screenMinScore, "min-score", 0, "minimum quality score (0-5)")
}

func runScreen(cmd *cobra.Command, args []string) error {
	if screenMinScore < 0 || screenMinScore > 5 {
		return fmt.Errorf("min-score must be between 0 and 5, got %d", screenMinScore)
	}

	_, _, p, err := setup()
	if err != nil {
		return err
	}

	table, err := p.GetTable(context.Background(), false)
	if err != nil {
		return err
	}

	funds := scoring.FilterByScore(table, screenMinScore)

	columns := []string{"TICKER", "SEGMENT", "DY", "P/VP", "LIQUIDITY", "VACANCY", "SCORE"}
	widths := []int{8, 22, 8, 6, 14, 8, 5}

	PrintTableHeader(columns, widths)
	for _, fund := range funds {
		PrintTableRow([]string{
			fund.Ticker,
			fund.Segment,
			formatPercentMetric(fund.DividendYield),
			formatMetric(fund.PVP, 2),
			formatMetric(fund.Liquidity, 0),
			formatPercentMetric(fund.Vacancy),
			fmt.Sprintf("%d", fund.Score),
		}, widths)
	}

	fmt.Printf("\n%d of %d funds at score >= %d\n", len(funds), len(table.Funds), screenMinScore)
	return nil
}
