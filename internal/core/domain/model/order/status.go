package order

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	New ──> InProgress ──> Ready ──> Delivered ──> Paid
//	 │          │
//	 └──────────┴──> Cancelled
//
// New, InProgress, Ready and Delivered are derived from the aggregate item
// statuses through DeriveStatus; callers never request them directly. The only
// caller-requested transitions are cancellation (from New or InProgress) and
// payment (from Ready or Delivered, via Close). Paid and Cancelled are
// terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status when a waiter opens the order.
	// An order with no items can never progress past New.
	New

	// InProgress indicates the kitchen has started at least one item.
	InProgress

	// Ready indicates every non-cancelled item is ready to be served.
	Ready

	// Delivered indicates every non-cancelled item has reached the table.
	Delivered

	// Paid is the terminal status of a settled order.
	Paid

	// Cancelled is the terminal status of an abandoned order.
	// Reachable only from New or InProgress.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		New:        "New",
		InProgress: "InProgress",
		Ready:      "Ready",
		Delivered:  "Delivered",
		Paid:       "Paid",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined order statuses.
func (s Status) Validate() error {
	switch s {
	case New, InProgress, Ready, Delivered, Paid, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%d is not a valid order status", s))
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

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Cancelled
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - New -> Cancelled
//   - InProgress -> Cancelled
//
// Returns (0, *errs.InvalidTransitionError) once items are ready, delivered,
// or the order is already terminal.
func (s Status) Cancel() (Status, error) {
	if s != New && s != InProgress {
		return 0, errs.NewInvalidTransitionError("order", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}

// Pay transitions the status to Paid.
//
// Valid transitions:
//   - Ready -> Paid
//   - Delivered -> Paid
//
// Everything else is rejected; in particular a New order (zero items) cannot
// be paid.
func (s Status) Pay() (Status, error) {
	if s != Ready && s != Delivered {
		return 0, errs.NewInvalidTransitionError("order", s.String(), Paid.String())
	}
	return Paid, nil
}

// DeriveStatus computes the non-terminal order status implied by the item
// statuses. It is the single derivation point used by both the mutation path
// and read paths, so the aggregate invariant cannot drift:
//
//   - no items, or every item cancelled: New
//   - every non-cancelled item Delivered: Delivered
//   - every non-cancelled item Ready or Delivered: Ready
//   - any non-cancelled item started: InProgress
//   - otherwise: New
func DeriveStatus(items []*Item) Status {
	active := 0
	delivered := 0
	readyOrLater := 0
	started := 0

	for _, item := range items {
		if item.Status() == ItemCancelled {
			continue
		}
		active++
		switch item.Status() {
		case ItemDelivered:
			delivered++
			readyOrLater++
			started++
		case ItemReady:
			readyOrLater++
			started++
		case ItemInPreparation:
			started++
		}
	}

	switch {
	case active == 0:
		return New
	case delivered == active:
		return Delivered
	case readyOrLater == active:
		return Ready
	case started > 0:
		return InProgress
	default:
		return New
	}
}
