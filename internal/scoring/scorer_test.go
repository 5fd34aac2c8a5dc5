package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/pkg/config"
	"github.com/brfin/fiiradar/pkg/logger"
)

func testThresholds() config.ScoreConfig {
	return config.ScoreConfig{
		MinDividendYield: 0.08,
		MaxPVP:           1.2,
		MinLiquidity:     500_000,
		MaxVacancy:       0.05,
		MinMarketValue:   1e8,
	}
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
}

func TestScoreOne(t *testing.T) {
	scorer := New(testThresholds(), testLogger())

	tests := []struct {
		name      string
		fund      contracts.FundRecord
		wantScore int
	}{
		{
			name: "all five predicates pass",
			fund: contracts.FundRecord{
				Ticker:        "HGLG11",
				DividendYield: contracts.F(0.085),
				PVP:           contracts.F(0.95),
				Liquidity:     contracts.F(1_200_000),
				Vacancy:       contracts.F(0.021),
				MarketValue:   contracts.F(5e8),
			},
			wantScore: 5,
		},
		{
			name:      "all metrics missing scores zero",
			fund:      contracts.FundRecord{Ticker: "VAZIO11"},
			wantScore: 0,
		},
		{
			name: "missing metric fails its predicate only",
			fund: contracts.FundRecord{
				Ticker:        "MEIO11",
				DividendYield: contracts.F(0.09),
				PVP:           contracts.F(1.0),
				Liquidity:     contracts.Missing(),
				Vacancy:       contracts.F(0.01),
				MarketValue:   contracts.F(2e8),
			},
			wantScore: 4,
		},
		{
			name: "thresholds are inclusive",
			fund: contracts.FundRecord{
				Ticker:        "BORDA11",
				DividendYield: contracts.F(0.08),
				PVP:           contracts.F(1.2),
				Liquidity:     contracts.F(500_000),
				Vacancy:       contracts.F(0.05),
				MarketValue:   contracts.F(1e8),
			},
			wantScore: 5,
		},
		{
			name: "pvp of zero means unknown, not cheap",
			fund: contracts.FundRecord{
				Ticker: "ZERO11",
				PVP:    contracts.F(0),
			},
			wantScore: 0,
		},
		{
			name: "vacancy of zero is a passing value",
			fund: contracts.FundRecord{
				Ticker:  "CHEIO11",
				Vacancy: contracts.F(0),
			},
			wantScore: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.scoreOne(tt.fund)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, got.Score, got.Checks.Count(), "score must match its checks")
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 5)
		})
	}
}

func TestScore_TableIsNotMutated(t *testing.T) {
	table := &contracts.FundTable{
		Funds: []contracts.FundRecord{
			{Ticker: "HGLG11", DividendYield: contracts.F(0.085)},
			{Ticker: "MXRF11", DividendYield: contracts.F(0.123)},
		},
	}

	scorer := New(testThresholds(), testLogger())
	scored := scorer.Score(table)

	require.Len(t, scored.Funds, 2)
	assert.Equal(t, "HGLG11", scored.Funds[0].Ticker)
	assert.Equal(t, 2, table.Len(), "input table untouched")
}

func TestFilterByScore(t *testing.T) {
	table := &contracts.ScoredTable{
		Funds: []contracts.ScoredRecord{
			{FundRecord: contracts.FundRecord{Ticker: "A11"}, Score: 5},
			{FundRecord: contracts.FundRecord{Ticker: "B11"}, Score: 2},
			{FundRecord: contracts.FundRecord{Ticker: "C11"}, Score: 4},
		},
	}

	got := FilterByScore(table, 4)
	require.Len(t, got, 2)
	assert.Equal(t, "A11", got[0].Ticker)
	assert.Equal(t, "C11", got[1].Ticker)

	assert.Len(t, FilterByScore(table, 0), 3)
	assert.Empty(t, FilterByScore(table, 6))
}
