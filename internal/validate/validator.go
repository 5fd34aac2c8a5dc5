// Package validate enforces schema completeness and minimum data quality
// on fetched tables before they are scored or queried.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/internal/normalize"
	"github.com/brfin/fiiradar/pkg/config"
)

// DefaultRequiredColumns are the canonical keys downstream stages rely on.
var DefaultRequiredColumns = []string{
	normalize.ColTicker,
	normalize.ColSegment,
	normalize.ColPrice,
	normalize.ColDividendYield,
	normalize.ColPVP,
	normalize.ColLiquidity,
	normalize.ColMarketValue,
}

// Config holds validation thresholds
type Config struct {
	RequiredColumns       []string
	MinRows               int
	MaxMissingRowFraction float64
}

// FromAppConfig builds a validator Config from application configuration
func FromAppConfig(cfg *config.Config) Config {
	return Config{
		RequiredColumns:       DefaultRequiredColumns,
		MinRows:               cfg.Validation.MinRows,
		MaxMissingRowFraction: cfg.Validation.MaxMissingRowFraction,
	}
}

// Validator checks table snapshots against quality thresholds
type Validator struct {
	config Config
}

// New creates a Validator
func New(config Config) *Validator {
	return &Validator{config: config}
}

// Validate returns nil for a usable table, or a ValidationError carrying
// every failed check. The column check is structural: when it fails the
// remaining checks are skipped, since they would only report noise. The
// data-quality checks are all evaluated so callers get the complete
// diagnostic picture in one pass. The table is never mutated.
func (v *Validator) Validate(table *contracts.FundTable) error {
	var reasons []contracts.ValidationReason

	// 1. Required columns (structural, aborts further checks)
	if missing := v.missingColumns(table); len(missing) > 0 {
		reasons = append(reasons, contracts.ValidationReason{
			Code:   contracts.MissingColumns,
			Detail: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		})
		return &contracts.ValidationError{Reasons: reasons}
	}

	// 2. Row count (a short table usually means a partial scrape)
	if table.Len() < v.config.MinRows {
		reasons = append(reasons, contracts.ValidationReason{
			Code:   contracts.InsufficientRows,
			Detail: fmt.Sprintf("only %d rows, expected at least %d", table.Len(), v.config.MinRows),
		})
	}

	// 3. Fraction of rows with every scored metric missing
	if frac := missingRowFraction(table); frac > v.config.MaxMissingRowFraction {
		reasons = append(reasons, contracts.ValidationReason{
			Code: contracts.ExcessiveMissingData,
			Detail: fmt.Sprintf("%.0f%% of rows have no usable numeric data (max %.0f%%)",
				frac*100, v.config.MaxMissingRowFraction*100),
		})
	}

	// 4. Duplicate tickers are an error: ambiguous which row to keep
	if dups := duplicateTickers(table); len(dups) > 0 {
		reasons = append(reasons, contracts.ValidationReason{
			Code:   contracts.DuplicateKeys,
			Detail: fmt.Sprintf("duplicate tickers: %s", strings.Join(dups, ", ")),
		})
	}

	if len(reasons) > 0 {
		return &contracts.ValidationError{Reasons: reasons}
	}
	return nil
}

// missingColumns lists required columns absent from the table schema
func (v *Validator) missingColumns(table *contracts.FundTable) []string {
	var missing []string
	for _, col := range v.config.RequiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// missingRowFraction computes the share of rows whose scored metrics are
// all the missing sentinel
func missingRowFraction(table *contracts.FundTable) float64 {
	if table.Len() == 0 {
		return 0
	}

	missing := 0
	for i := range table.Funds {
		if table.Funds[i].AllCoreMissing() {
			missing++
		}
	}
	return float64(missing) / float64(table.Len())
}

// duplicateTickers returns tickers appearing more than once, sorted
func duplicateTickers(table *contracts.FundTable) []string {
	counts := make(map[string]int, table.Len())
	for i := range table.Funds {
		counts[table.Funds[i].Ticker]++
	}

	var dups []string
	for ticker, n := range counts {
		if n > 1 {
			dups = append(dups, ticker)
		}
	}
	sort.Strings(dups)
	return dups
}
