package jobs

import (
	"context"
	"log/slog"

	"tableside/internal/core/application/coordinator"

	"github.com/robfig/cron/v3"
)

// PersistenceFlushJob retries pending writes every thirty seconds. The
// coordination service keeps serving from memory while the database is down;
// this job is what brings the two back in sync.
type PersistenceFlushJob struct {
	coord  *coordinator.Coordinator
	cron   *cron.Cron
	logger *slog.Logger
}

// NewPersistenceFlushJob creates a new job for draining the pending-write set.
func NewPersistenceFlushJob(coord *coordinator.Coordinator, logger *slog.Logger) *PersistenceFlushJob {
	return &PersistenceFlushJob{
		coord:  coord,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "persistence_flush_job"),
	}
}

// Start begins the flush job to run every thirty seconds.
func (j *PersistenceFlushJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		if j.coord.PendingWrites() == 0 {
			return
		}
		if err := j.coord.FlushPending(ctx); err != nil {
			j.logger.WarnContext(ctx, "Pending writes not fully drained", "error", err)
			return
		}
		j.logger.InfoContext(ctx, "Pending writes drained")
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Persistence flush job started (running every 30 seconds)")
	return nil
}

// Stop stops the flush job.
func (j *PersistenceFlushJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Persistence flush job stopped")
}
