package jobs

import (
	"context"
	"fmt"

	"saleedit/internal/core/application/usecases/commands"
	"saleedit/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// storeTotalsHandler is satisfied by commands.StoreTotalsCommandHandler.
type storeTotalsHandler interface {
	Handle(ctx context.Context, cmd commands.StoreTotalsCommand) error
}

// TotalsCacheJob periodically refills missing order totals caches.
type TotalsCacheJob struct {
	handler   storeTotalsHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	log       *logger.Logger
}

func NewTotalsCacheJob(handler storeTotalsHandler, schedule string, batchSize int, log *logger.Logger) *TotalsCacheJob {
	return &TotalsCacheJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		log:       log.Component("totals_cache_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *TotalsCacheJob) Start() error {
	cmd, err := commands.NewStoreTotalsCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.Run(context.Background(), cmd) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.log.Info().Str("schedule", j.schedule).Msg("totals cache job started")
	return nil
}

// Run executes one pass. Errors are logged, the next tick retries.
func (j *TotalsCacheJob) Run(ctx context.Context, cmd commands.StoreTotalsCommand) {
	if err := j.handler.Handle(ctx, cmd); err != nil {
		j.log.Error().Err(err).Msg("totals cache job failed")
	}
}

// Stop waits for a running pass to finish and stops the scheduler.
func (j *TotalsCacheJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info().Msg("totals cache job stopped")
}
