// Package pipeline orchestrates the fetch → normalize → validate → score
// stages and owns the table cache. All downstream consumers (API,
// similarity, CLI) read the snapshot this package produces.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/internal/normalize"
	"github.com/brfin/fiiradar/internal/scoring"
	"github.com/brfin/fiiradar/internal/validate"
	"github.com/brfin/fiiradar/pkg/config"
	"github.com/brfin/fiiradar/pkg/logger"
)

// Source fetches the raw table from upstream
type Source interface {
	FetchRaw(ctx context.Context) ([]contracts.RawRecord, []string, error)
}

// Pipeline wires the core stages together behind a TTL cache.
type Pipeline struct {
	source     Source
	normalizer *normalize.Normalizer
	validator  *validate.Validator
	scorer     *scoring.Scorer
	cache      *TableCache
	scope      string
	clock      Clock
	logger     *logger.Logger

	// Serializes check-TTL/fetch/store so concurrent callers cannot
	// trigger duplicate upstream fetches.
	refreshMu sync.Mutex
}

// New creates a Pipeline from its stages. A nil clock means wall time.
func New(source Source, cfg *config.Config, clock Clock, log *logger.Logger) *Pipeline {
	if clock == nil {
		clock = time.Now
	}

	return &Pipeline{
		source:     source,
		normalizer: normalize.New(),
		validator:  validate.New(validate.FromAppConfig(cfg)),
		scorer:     scoring.New(cfg.Score, log),
		cache:      NewTableCache(cfg.Cache.TTL, clock),
		scope:      cfg.Cache.Scope,
		clock:      clock,
		logger:     log,
	}
}

// GetTable returns the current scored snapshot. Calls inside the TTL are
// served from cache with no network access; forceRefresh bypasses the
// cache. A table that fails validation is never cached, scored or
// returned.
func (p *Pipeline) GetTable(ctx context.Context, forceRefresh bool) (*contracts.ScoredTable, error) {
	if !forceRefresh {
		if table, ok := p.cache.Get(p.scope); ok {
			p.logger.WithField("scope", p.scope).Debug("Serving table from cache")
			return table, nil
		}
	}

	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	// A concurrent caller may have refreshed while we waited for the lock
	if !forceRefresh {
		if table, ok := p.cache.Get(p.scope); ok {
			return table, nil
		}
	}

	table, err := p.refresh(ctx)
	if err != nil {
		return nil, err
	}

	p.cache.Set(p.scope, table)
	return table, nil
}

// refresh runs the full stage sequence once
func (p *Pipeline) refresh(ctx context.Context) (*contracts.ScoredTable, error) {
	raws, columns, err := p.source.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}

	table, report := p.normalizer.Normalize(raws, columns, p.clock())
	if report.Warnings() > 0 || report.SkippedRecords > 0 {
		p.logger.WithFields(map[string]interface{}{
			"field_warnings":  report.Warnings(),
			"skipped_records": report.SkippedRecords,
		}).Warn("Normalization reported issues")
	}

	if err := p.validator.Validate(table); err != nil {
		p.logger.WithError(err).Error("Fetched table failed validation")
		return nil, err
	}

	scored := p.scorer.Score(table)

	p.logger.WithFields(map[string]interface{}{
		"funds": len(scored.Funds),
		"scope": p.scope,
	}).Info("Refreshed fund table")

	return scored, nil
}

// LastRefreshedAt reports when the cached snapshot was stored
func (p *Pipeline) LastRefreshedAt() (time.Time, bool) {
	return p.cache.StoredAt(p.scope)
}
