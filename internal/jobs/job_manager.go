package jobs

import (
	"fmt"

	"saleedit/internal/pkg/logger"
)

// Config holds the schedules of the jobs.
type Config struct {
	TotalsSchedule  string
	TotalsBatchSize int
}

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	totalsCacheJob *TotalsCacheJob
}

func NewJobManager(storeTotals storeTotalsHandler, cfg Config, log *logger.Logger) *JobManager {
	return &JobManager{
		totalsCacheJob: NewTotalsCacheJob(storeTotals, cfg.TotalsSchedule, cfg.TotalsBatchSize, log),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.totalsCacheJob.Start(); err != nil {
		return fmt.Errorf("failed to start totals cache job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.totalsCacheJob.Stop()
}
