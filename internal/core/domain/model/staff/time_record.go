package staff

import (
	"errors"
	"math"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrTimeRecordIsNotConstructed is returned when a TimeRecord instance was not
// created through the NewTimeRecord or RestoreTimeRecord factory methods.
var ErrTimeRecordIsNotConstructed = errors.New(
	"TimeRecord must be created via NewTimeRecord or RestoreTimeRecord constructor")

// TimeRecord is one clock-in/clock-out entry for a staff member. A user has at
// most one open record (clockOut unset) at a time; that invariant is enforced
// by the coordination service, not by the record itself.
type TimeRecord struct {
	id       kernel.UUID
	userID   kernel.UUID
	clockIn  time.Time
	clockOut *time.Time

	// totalHours is derived at clock-out, rounded to one decimal.
	totalHours float64

	isConstructed bool
}

// NewTimeRecord creates an open record starting at clockIn.
func NewTimeRecord(id, userID kernel.UUID, clockIn time.Time) (*TimeRecord, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	return &TimeRecord{
		id:            id,
		userID:        userID,
		clockIn:       clockIn,
		isConstructed: true,
	}, nil
}

// RestoreTimeRecord reconstructs a record from persistence. A stored clock-out
// recomputes the derived total hours.
func RestoreTimeRecord(id, userID kernel.UUID, clockIn time.Time, clockOut *time.Time) (*TimeRecord, error) {
	r, err := NewTimeRecord(id, userID, clockIn)
	if err != nil {
		return nil, err
	}
	if clockOut != nil {
		if err = r.Close(*clockOut); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Validate ensures the TimeRecord instance was properly constructed.
func (r *TimeRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrTimeRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *TimeRecord) ID() kernel.UUID {
	return r.id
}

// UserID returns the staff member the record belongs to.
func (r *TimeRecord) UserID() kernel.UUID {
	return r.userID
}

// ClockIn returns the shift start time.
func (r *TimeRecord) ClockIn() time.Time {
	return r.clockIn
}

// ClockOut returns the shift end time, nil while the shift is open.
func (r *TimeRecord) ClockOut() *time.Time {
	return r.clockOut
}

// IsOpen reports whether the shift has not been closed yet.
func (r *TimeRecord) IsOpen() bool {
	return r.clockOut == nil
}

// TotalHours returns the shift length in hours, rounded to one decimal.
// Zero until the record is closed.
func (r *TimeRecord) TotalHours() float64 {
	return r.totalHours
}

// Elapsed returns how long an open shift has been running. For a closed
// record it returns the final shift length.
func (r *TimeRecord) Elapsed(now time.Time) time.Duration {
	if r.clockOut != nil {
		return r.clockOut.Sub(r.clockIn)
	}
	return now.Sub(r.clockIn)
}

// Close stamps the clock-out time and computes the derived total hours.
// Closing an already closed record or closing before the clock-in time is
// rejected.
func (r *TimeRecord) Close(clockOut time.Time) error {
	if r.clockOut != nil {
		return errs.NewValueIsInvalidError("time record is already closed")
	}
	if clockOut.Before(r.clockIn) {
		return errs.NewValueIsInvalidError("clock-out is before clock-in")
	}

	r.clockOut = &clockOut
	r.totalHours = math.Round(clockOut.Sub(r.clockIn).Hours()*10) / 10
	return nil
}
