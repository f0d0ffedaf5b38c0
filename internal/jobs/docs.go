// Package jobs provides scheduled background tasks of the sale edit service.
//
// Jobs are cron wrappers built on github.com/robfig/cron/v3 with a Start and
// Stop pair, managed together by JobManager.
//
// # Available Jobs
//
//  1. TotalsCacheJob - stores the totals cache of confirmed, processing and
//     done orders whose cache was invalidated by an edit
//
// # Usage
//
//	jobManager := jobs.NewJobManager(storeTotalsHandler, jobs.Config{
//		TotalsSchedule:  "0 * * * * *",
//		TotalsBatchSize: 100,
//	}, log)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal().Err(err).Msg("failed to start jobs")
//	}
//	defer jobManager.StopAll()
//
// Schedules use the six field cron syntax with seconds.
package jobs
