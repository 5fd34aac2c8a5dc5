package scheduler

import (
	"context"
	"time"
)

// Job represents a scheduled job
type Job interface {
	// Name returns the job name
	Name() string

	// Run executes the job
	Run(ctx context.Context) error

	// Schedule returns the cron schedule expression (six fields, with
	// seconds). Example: "0 0 * * * *" runs at the top of every hour.
	Schedule() string
}

// JobResult represents the result of one job execution
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// JobHistory tracks executions of a single job
type JobHistory struct {
	RunCount int         `json:"run_count"`
	LastRun  time.Time   `json:"last_run"`
	LastErr  string      `json:"last_err,omitempty"`
	Results  []JobResult `json:"results"`
}

const historyLimit = 50

func (h *JobHistory) record(result JobResult) {
	h.RunCount++
	h.LastRun = result.StartedAt
	h.LastErr = result.Error

	h.Results = append(h.Results, result)
	if len(h.Results) > historyLimit {
		h.Results = h.Results[len(h.Results)-historyLimit:]
	}
}

// SuccessRate returns the fraction of recorded runs that succeeded
func (h *JobHistory) SuccessRate() float64 {
	if len(h.Results) == 0 {
		return 0.0
	}

	success := 0
	for _, result := range h.Results {
		if result.Success {
			success++
		}
	}
	return float64(success) / float64(len(h.Results))
}
