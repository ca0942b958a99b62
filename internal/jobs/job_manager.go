package jobs

import (
	"fmt"
	"log/slog"

	"tableside/internal/core/application/coordinator"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	persistenceFlushJob *PersistenceFlushJob
	shiftWatchdogJob    *ShiftWatchdogJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(coord *coordinator.Coordinator, logger *slog.Logger) *JobManager {
	return &JobManager{
		persistenceFlushJob: NewPersistenceFlushJob(coord, logger),
		shiftWatchdogJob:    NewShiftWatchdogJob(coord, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.persistenceFlushJob.Start(); err != nil {
		return fmt.Errorf("failed to start persistence flush job: %w", err)
	}

	if err := jm.shiftWatchdogJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.persistenceFlushJob.Stop()
		return fmt.Errorf("failed to start shift watchdog job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.persistenceFlushJob.Stop()
	jm.shiftWatchdogJob.Stop()
}
