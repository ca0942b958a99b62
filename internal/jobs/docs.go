// Package jobs provides scheduled background tasks for the coordination
// service, implemented with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PersistenceFlushJob - Runs every thirty seconds to retry writes that
// failed while the database was unreachable.
// 2. ShiftWatchdogJob - Runs daily in the early morning to force-close
// shifts nobody clocked out of.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(coord, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The flush job logs and retries on its next tick; a store that is still
// down must not crash the floor. The watchdog logs each shift it closes so
// managers can correct the hours.
package jobs
