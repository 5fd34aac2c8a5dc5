package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/internal/normalize"
)

// PrintTableHeader prints a table header with a separator line
func PrintTableHeader(columns []string, widths []int) {
	for i, col := range columns {
		fmt.Printf("%-*s", widths[i], col)
		if i < len(columns)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2
		}
	}
	fmt.Println(strings.Repeat("-", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// formatMetric renders a metric or "-" when the source had no value
func formatMetric(m contracts.Metric, decimals int) string {
	if !m.Valid {
		return "-"
	}
	return strconv.FormatFloat(m.Value, 'f', decimals, 64)
}

// formatPercentMetric renders a fraction metric as a Brazilian percent
func formatPercentMetric(m contracts.Metric) string {
	if !m.Valid {
		return "-"
	}
	return normalize.FormatPercent(m.Value)
}
