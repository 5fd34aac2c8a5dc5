// Package scoring applies the five quality predicates and sums them into
// a 0-5 score per fund.
package scoring

import (
	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/pkg/config"
	"github.com/brfin/fiiradar/pkg/logger"
)

// Scorer computes quality scores against configured thresholds.
type Scorer struct {
	thresholds config.ScoreConfig
	logger     *logger.Logger
}

// New creates a Scorer
func New(thresholds config.ScoreConfig, log *logger.Logger) *Scorer {
	return &Scorer{
		thresholds: thresholds,
		logger:     log,
	}
}

// Score evaluates every fund in the table. Input records are copied, not
// mutated. A fund with all metrics missing scores 0.
func (s *Scorer) Score(table *contracts.FundTable) *contracts.ScoredTable {
	scored := &contracts.ScoredTable{
		Funds:         make([]contracts.ScoredRecord, 0, table.Len()),
		FetchedAt:     table.FetchedAt,
		SchemaVersion: table.SchemaVersion,
	}

	for i := range table.Funds {
		scored.Funds = append(scored.Funds, s.scoreOne(table.Funds[i]))
	}

	s.logger.WithFields(map[string]interface{}{
		"funds": len(scored.Funds),
	}).Debug("Scored fund table")

	return scored
}

// scoreOne evaluates the five predicates for a single fund. Each predicate
// is true only when the metric is present and satisfies its comparison;
// a missing metric never passes. Predicates are independent: no ordering
// between them matters.
func (s *Scorer) scoreOne(fund contracts.FundRecord) contracts.ScoredRecord {
	t := s.thresholds

	checks := contracts.ScoreChecks{
		GoodDividendYield: fund.DividendYield.Valid && fund.DividendYield.Value >= t.MinDividendYield,
		// P/VP of exactly 0 means "book value unknown", not a bargain
		GoodPVP:           fund.PVP.Valid && fund.PVP.Value > 0 && fund.PVP.Value <= t.MaxPVP,
		EnoughLiquidity:   fund.Liquidity.Valid && fund.Liquidity.Value >= t.MinLiquidity,
		LowVacancy:        fund.Vacancy.Valid && fund.Vacancy.Value <= t.MaxVacancy,
		EnoughMarketValue: fund.MarketValue.Valid && fund.MarketValue.Value >= t.MinMarketValue,
	}

	return contracts.ScoredRecord{
		FundRecord: fund,
		Checks:     checks,
		Score:      checks.Count(),
	}
}

// FilterByScore returns the funds with at least minScore, preserving order
func FilterByScore(table *contracts.ScoredTable, minScore int) []contracts.ScoredRecord {
	out := make([]contracts.ScoredRecord, 0, len(table.Funds))
	for i := range table.Funds {
		if table.Funds[i].Score >= minScore {
			out = append(out, table.Funds[i])
		}
	}
	return out
}
