// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"time"

	"github.com/brfin/fiiradar/internal/pipeline"
	"github.com/brfin/fiiradar/pkg/logger"
)

const refreshTimeout = 2 * time.Minute

// RefreshJob re-fetches and re-scores the fund table, bypassing the TTL
// cache so the snapshot stays warm between requests.
type RefreshJob struct {
	pipeline *pipeline.Pipeline
	spec     string
	logger   *logger.Logger
}

// NewRefreshJob creates a refresh job with the given cron spec
func NewRefreshJob(p *pipeline.Pipeline, spec string, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		pipeline: p,
		spec:     spec,
		logger:   log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "fund_table_refresh"
}

// Schedule returns the cron schedule expression
func (j *RefreshJob) Schedule() string {
	return j.spec
}

// Run refreshes the fund table
func (j *RefreshJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	table, err := j.pipeline.GetTable(ctx, true)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"funds":      len(table.Funds),
		"fetched_at": table.FetchedAt,
	}).Info("Fund table refreshed")

	return nil
}
