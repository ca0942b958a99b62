package jobs

import (
	"context"
	"log/slog"
	"time"

	"tableside/internal/core/application/coordinator"

	"github.com/robfig/cron/v3"
)

// maxShiftDuration is the longest a shift can plausibly run. Anything open
// longer means somebody forgot to clock out.
const maxShiftDuration = 16 * time.Hour

// ShiftWatchdogJob closes forgotten shifts. It runs daily at 04:00, after
// close and before the first opener arrives, and clocks out anyone whose
// shift has been open longer than maxShiftDuration.
type ShiftWatchdogJob struct {
	coord  *coordinator.Coordinator
	cron   *cron.Cron
	logger *slog.Logger
}

// NewShiftWatchdogJob creates a new job for closing forgotten shifts.
func NewShiftWatchdogJob(coord *coordinator.Coordinator, logger *slog.Logger) *ShiftWatchdogJob {
	return &ShiftWatchdogJob{
		coord:  coord,
		cron:   cron.New(),
		logger: logger.With("component", "shift_watchdog_job"),
	}
}

// Start begins the watchdog job to run daily at 04:00.
func (j *ShiftWatchdogJob) Start() error {
	_, err := j.cron.AddFunc("0 4 * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shift watchdog job started (running daily at 04:00)")
	return nil
}

// Stop stops the watchdog job.
func (j *ShiftWatchdogJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shift watchdog job stopped")
}

func (j *ShiftWatchdogJob) run(ctx context.Context) {
	for _, shift := range j.coord.OpenShifts() {
		elapsed, err := j.coord.ElapsedOnShift(shift.UserID)
		if err != nil {
			continue
		}
		if elapsed < maxShiftDuration {
			continue
		}

		rec, err := j.coord.ClockOut(ctx, shift.UserID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Forced clock-out failed",
				"userId", shift.UserID.String(), "error", err)
			continue
		}
		j.logger.WarnContext(ctx, "Shift force-closed after exceeding maximum duration",
			"userId", shift.UserID.String(),
			"clockIn", rec.ClockIn,
			"totalHours", rec.TotalHours)
	}
}
