package table

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// Status represents the availability state of a physical table, distinct from
// the status of any order served at it.
//
// State transitions:
//
//	Available ──> Occupied ──> Dirty ──> Available
//
// Occupied is entered when a waiter opens an order, Dirty when the order is
// closed, and Available again once the table has been bussed. There is no
// terminal state; tables are reused indefinitely. Any transition not listed
// above is rejected.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available is the initial status of every table: cleaned and ready to seat guests.
	Available

	// Occupied indicates guests are seated and an order is active at the table.
	Occupied

	// Dirty indicates the guests have left and the table awaits bussing.
	Dirty
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Available: "Available",
		Occupied:  "Occupied",
		Dirty:     "Dirty",
	}
}

// transitions lists the allowed next statuses for each status.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Available: {Occupied},
		Occupied:  {Dirty},
		Dirty:     {Available},
	}
}

// Validate checks if the Status value is one of Available, Occupied or Dirty.
func (s Status) Validate() error {
	switch s {
	case Available, Occupied, Dirty:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("table status",
			fmt.Errorf("%d is not a valid table status", s))
	}
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTransitionTo reports whether the table status machine allows moving from
// the current status to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the status to next.
//
// Returns:
//   - (next, nil) when the transition is allowed
//   - (0, *errs.InvalidTransitionError) otherwise
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(next) {
		return 0, errs.NewInvalidTransitionError("table", s.String(), next.String())
	}
	return next, nil
}

// StatusFromString parses a status from its human-readable name.
// Used when rehydrating tables from persistence and when parsing requests.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("table status",
		fmt.Errorf("%q is not a valid table status", s))
}
