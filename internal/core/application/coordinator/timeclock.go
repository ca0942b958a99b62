package coordinator

import (
	"context"
	"fmt"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/staff"
	"tableside/internal/pkg/errs"
)

// Authenticate checks a username and password and returns the user on
// success. Unknown usernames, wrong passwords and deactivated accounts all
// fail with the same *errs.AuthenticationError so callers cannot probe which
// usernames exist.
func (c *Coordinator) Authenticate(ctx context.Context, username, password string) (*staff.User, error) {
	c.mu.RLock()
	u, ok := c.usersByName[username]
	c.mu.RUnlock()

	if !ok {
		return nil, errs.NewAuthenticationError(username)
	}
	if err := u.Authenticate(password); err != nil {
		return nil, err
	}

	c.appendActivity(ctx, "USER_LOGIN", fmt.Sprintf("%s logged in", username))
	return u, nil
}

// ClockIn opens a shift record for the user. A user with an open record
// cannot clock in again.
func (c *Coordinator) ClockIn(ctx context.Context, userID kernel.UUID) (TimeRecordView, error) {
	c.mu.Lock()

	u, ok := c.users[userID]
	if !ok {
		c.mu.Unlock()
		return TimeRecordView{}, errs.NewObjectNotFoundError("userId", userID)
	}
	if _, open := c.openShifts[userID]; open {
		c.mu.Unlock()
		return TimeRecordView{}, errs.NewAlreadyClockedInError(userID.String())
	}

	rec, err := staff.NewTimeRecord(kernel.NewUUID(), userID, c.clock())
	if err != nil {
		c.mu.Unlock()
		return TimeRecordView{}, err
	}
	c.openShifts[userID] = rec

	var storageErr error
	if err := c.timeRepo.Add(ctx, rec); err != nil {
		c.markPendingRecord(pendingTimeRecordAdd, rec)
		storageErr = errs.NewStorageError("add time record", err)
	}
	view := snapshotTimeRecord(rec)
	c.mu.Unlock()

	c.appendActivity(ctx, "CLOCK_IN", fmt.Sprintf("%s clocked in", u.Username()))
	return view, storageErr
}

// ClockOut closes the user's open shift record and stamps the rounded total
// hours onto it.
func (c *Coordinator) ClockOut(ctx context.Context, userID kernel.UUID) (TimeRecordView, error) {
	c.mu.Lock()

	u, ok := c.users[userID]
	if !ok {
		c.mu.Unlock()
		return TimeRecordView{}, errs.NewObjectNotFoundError("userId", userID)
	}
	rec, open := c.openShifts[userID]
	if !open {
		c.mu.Unlock()
		return TimeRecordView{}, errs.NewNotClockedInError(userID.String())
	}
	if err := rec.Close(c.clock()); err != nil {
		c.mu.Unlock()
		return TimeRecordView{}, err
	}
	delete(c.openShifts, userID)

	var storageErr error
	if err := c.timeRepo.Update(ctx, rec); err != nil {
		c.markPendingRecord(pendingTimeRecordUpdate, rec)
		storageErr = errs.NewStorageError("update time record", err)
	}
	view := snapshotTimeRecord(rec)
	c.mu.Unlock()

	c.appendActivity(ctx, "CLOCK_OUT",
		fmt.Sprintf("%s clocked out after %.1f hours", u.Username(), view.TotalHours))
	return view, storageErr
}

// ElapsedOnShift reports how long the user's current shift has been running.
func (c *Coordinator) ElapsedOnShift(userID kernel.UUID) (time.Duration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, open := c.openShifts[userID]
	if !open {
		return 0, errs.NewNotClockedInError(userID.String())
	}
	return rec.Elapsed(c.clock()), nil
}

// OpenShifts returns a snapshot of every shift still on the clock. The
// watchdog job uses this to find shifts nobody closed.
func (c *Coordinator) OpenShifts() []TimeRecordView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	views := make([]TimeRecordView, 0, len(c.openShifts))
	for _, rec := range c.openShifts {
		views = append(views, snapshotTimeRecord(rec))
	}
	return views
}
