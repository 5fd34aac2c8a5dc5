package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/internal/similarity"
)

// similarCmd represents the similar command
var similarCmd = &cobra.Command{
	Use:   "similar TICKER",
	Short: "Rank funds by closeness to a target",
	Long: `Finds funds with dividend yield and P/VP close to the target's, ranked
nearest first. Tolerances default to windows scaled from the target's
own metrics.

Example:
  go run ./cmd/fiiradar similar HGLG11
  go run ./cmd/fiiradar similar HGLG11 --tol-dy 0.02 --same-segment`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

var (
	similarTolDY       float64
	similarTolPVP      float64
	similarMinLiq      float64
	similarSameSegment bool
	similarLimit       int
)

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().Float64Var(&similarTolDY, "tol-dy", 0, "dividend yield tolerance as a fraction (0 = auto)")
	similarCmd.Flags().Float64Var(&similarTolPVP, "tol-pvp", 0, "P/VP tolerance (0 = auto)")
	similarCmd.Flags().Float64Var(&similarMinLiq, "min-liq", 0, "minimum daily liquidity in BRL (0 = auto)")
	similarCmd.Flags().BoolVar(&similarSameSegment, "same-segment", false, "only funds in the target's segment")
	similarCmd.Flags().IntVar(&similarLimit, "limit", 10, "maximum number of results")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	cfg, log, p, err := setup()
	if err != nil {
		return err
	}

	query := contracts.SimilarityQuery{
		Ticker:      strings.ToUpper(args[0]),
		SameSegment: similarSameSegment,
		MaxResults:  similarLimit,
	}
	if cmd.Flags().Changed("tol-dy") {
		query.DYTolerance = &similarTolDY
	}
	if cmd.Flags().Changed("tol-pvp") {
		query.PVPTolerance = &similarTolPVP
	}
	if cmd.Flags().Changed("min-liq") {
		query.MinLiquidity = &similarMinLiq
	}

	table, err := p.GetTable(context.Background(), false)
	if err != nil {
		return err
	}

	engine := similarity.New(cfg.Similarity, log)
	result, err := engine.FindSimilar(table, query)
	if err != nil {
		return err
	}

	fmt.Printf("Target: %s (%s)  DY %s  P/VP %s\n",
		result.Target.Ticker, result.Target.Segment,
		formatPercentMetric(result.Target.DividendYield),
		formatMetric(result.Target.PVP, 2))

	tolNote := ""
	if result.Tolerances.Suggested {
		tolNote = " (auto)"
	}
	fmt.Printf("Windows%s: DY +/- %.4f, P/VP +/- %.2f, liquidity >= %.0f\n\n",
		tolNote, result.Tolerances.DYTolerance, result.Tolerances.PVPTolerance, result.Tolerances.MinLiquidity)

	if len(result.Matches) == 0 {
		fmt.Println("No funds inside the tolerance windows.")
		return nil
	}

	columns := []string{"TICKER", "SEGMENT", "DY", "P/VP", "DISTANCE"}
	widths := []int{8, 22, 8, 6, 8}

	PrintTableHeader(columns, widths)
	for _, m := range result.Matches {
		PrintTableRow([]string{
			m.Fund.Ticker,
			m.Fund.Segment,
			formatPercentMetric(m.Fund.DividendYield),
			formatMetric(m.Fund.PVP, 2),
			fmt.Sprintf("%.4f", m.Distance),
		}, widths)
	}

	return nil
}
