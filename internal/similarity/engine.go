// Package similarity ranks funds by proximity to a target fund over a
// small feature set (dividend yield and P/VP, optionally constrained to
// the target's segment).
package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/pkg/config"
	"github.com/brfin/fiiradar/pkg/logger"
)

// Distance weights. The DY gap dominates because yield proximity is the
// primary similarity signal; each gap is scaled by its own tolerance so
// both terms are comparable fractions of the allowed window.
const (
	weightDY  = 0.6
	weightPVP = 0.4
)

// Engine answers similarity queries over a scored table.
type Engine struct {
	defaults config.SimilarityConfig
	logger   *logger.Logger
}

// New creates an Engine
func New(defaults config.SimilarityConfig, log *logger.Logger) *Engine {
	return &Engine{
		defaults: defaults,
		logger:   log,
	}
}

// FindSimilar resolves the target, filters candidates inside the tolerance
// window and returns them ranked ascending by distance. The target itself
// is never part of the result. Ties are broken by ticker so the ordering
// is deterministic.
func (e *Engine) FindSimilar(table *contracts.ScoredTable, query contracts.SimilarityQuery) (*contracts.SimilarityResult, error) {
	target := table.Find(query.Ticker)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", contracts.ErrFundNotFound, query.Ticker)
	}

	tol := e.resolveTolerances(target, query)

	targetDY := target.DividendYield.Or(0)
	targetPVP := target.PVP.Or(0)

	var matches []contracts.SimilarityMatch
	for i := range table.Funds {
		fund := &table.Funds[i]
		if fund.Ticker == target.Ticker {
			continue
		}
		if query.SameSegment && fund.Segment != target.Segment {
			continue
		}
		if !fund.DividendYield.Valid || !fund.PVP.Valid {
			continue
		}
		if !fund.Liquidity.Valid || fund.Liquidity.Value < tol.MinLiquidity {
			continue
		}

		dyGap := math.Abs(fund.DividendYield.Value - targetDY)
		pvpGap := math.Abs(fund.PVP.Value - targetPVP)
		if dyGap > tol.DYTolerance || pvpGap > tol.PVPTolerance {
			continue
		}

		matches = append(matches, contracts.SimilarityMatch{
			Fund:     *fund,
			Distance: distance(dyGap, pvpGap, tol),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Fund.Ticker < matches[j].Fund.Ticker
	})

	if query.MaxResults > 0 && len(matches) > query.MaxResults {
		matches = matches[:query.MaxResults]
	}

	e.logger.WithFields(map[string]interface{}{
		"ticker":    query.Ticker,
		"matches":   len(matches),
		"suggested": tol.Suggested,
	}).Debug("Similarity query answered")

	return &contracts.SimilarityResult{
		Target:     *target,
		Tolerances: tol,
		Matches:    matches,
	}, nil
}

// resolveTolerances fills unset query parameters with values scaled to the
// target fund, so defaults follow the fund's own magnitude instead of a
// fixed constant. A missing target metric falls back to a fixed absolute
// default.
func (e *Engine) resolveTolerances(target *contracts.ScoredRecord, query contracts.SimilarityQuery) contracts.Tolerances {
	tol := contracts.Tolerances{}

	if query.DYTolerance != nil {
		tol.DYTolerance = *query.DYTolerance
	} else {
		tol.Suggested = true
		tol.DYTolerance = scaled(target.DividendYield, e.defaults.ToleranceFraction, e.defaults.FallbackDYTolerance)
	}

	if query.PVPTolerance != nil {
		tol.PVPTolerance = *query.PVPTolerance
	} else {
		tol.Suggested = true
		tol.PVPTolerance = scaled(target.PVP, e.defaults.ToleranceFraction, e.defaults.FallbackPVPTolerance)
	}

	if query.MinLiquidity != nil {
		tol.MinLiquidity = *query.MinLiquidity
	} else {
		tol.Suggested = true
		tol.MinLiquidity = scaled(target.Liquidity, e.defaults.LiquidityFraction, e.defaults.FallbackMinLiquidity)
	}

	return tol
}

// scaled returns fraction*metric, or the fallback when the metric is
// missing or non-positive (a zero-width window would match nothing)
func scaled(m contracts.Metric, fraction, fallback float64) float64 {
	if m.Valid && m.Value > 0 {
		return m.Value * fraction
	}
	return fallback
}

// distance combines the two gaps as fractions of their tolerance windows
func distance(dyGap, pvpGap float64, tol contracts.Tolerances) float64 {
	d := 0.0
	if tol.DYTolerance > 0 {
		d += weightDY * (dyGap / tol.DYTolerance)
	}
	if tol.PVPTolerance > 0 {
		d += weightPVP * (pvpGap / tol.PVPTolerance)
	}
	return d
}
