package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brfin/fiiradar/internal/scheduler"
	"github.com/brfin/fiiradar/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the periodic refresh daemon",
	Long: `Starts the cron scheduler with the fund table refresh job. The schedule
comes from SCHEDULER_REFRESH_SPEC (default: top of every hour).

Example:
  go run ./cmd/fiiradar scheduler`,
	RunE: runScheduler,
}

var schedulerRunOnce bool

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&schedulerRunOnce, "run-now", false, "run the refresh job immediately on startup")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, log, p, err := setup()
	if err != nil {
		return err
	}

	sched := scheduler.New(log)

	refreshJob := jobs.NewRefreshJob(p, cfg.Scheduler.RefreshSpec, log)
	if err := sched.AddJob(refreshJob); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunOnce {
		if err := sched.RunNow(refreshJob.Name()); err != nil {
			return err
		}
	}

	fmt.Printf("Scheduler running, refresh spec %q\n", cfg.Scheduler.RefreshSpec)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if history, ok := sched.History(refreshJob.Name()); ok {
		fmt.Printf("\nRuns: %d, last run: %s, success rate: %.0f%%\n",
			history.RunCount, history.LastRun.Format("2006-01-02 15:04:05"), history.SuccessRate()*100)
	}

	return nil
}
