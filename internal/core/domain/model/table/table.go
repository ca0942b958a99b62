package table

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrTableIsNotConstructed is returned when a Table instance was not created
// through the NewTable or RestoreTable factory methods.
var ErrTableIsNotConstructed = errors.New("Table must be created via NewTable or RestoreTable constructor")

// Table represents a physical restaurant table. It tracks the table's
// availability status, the waiter currently serving it, and a reference to the
// active order.
//
// Table follows these invariants:
//   - Must have a valid unique identifier and a positive table number
//   - Capacity must be positive
//   - Status transitions follow the table state machine (see Status)
//   - A waiter and an active order are assigned only while Occupied
//
// The active order is held by id only; the order's lifecycle is independent of
// the table object's lifecycle.
type Table struct {
	id       kernel.UUID
	number   int
	capacity int
	status   Status

	// assignedWaiterID is the waiter serving the table (nil unless Occupied)
	assignedWaiterID *kernel.UUID

	// activeOrderID references the current non-terminal order (nil unless Occupied)
	activeOrderID *kernel.UUID

	isConstructed bool
}

// NewTable creates a new Table in Available status.
//
// Parameters:
//   - id: Unique identifier for the table (must be valid UUID)
//   - number: The table number shown to staff (must be positive)
//   - capacity: Number of seats (must be positive)
//
// Returns the created table, or a validation error if any parameter is invalid.
func NewTable(id kernel.UUID, number int, capacity int) (*Table, error) {
	t := &Table{
		status:        Available,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setNumber(number),
		t.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTable reconstructs a Table from persistence without replaying its
// history. The status must be valid and consistent with the waiter assignment.
func RestoreTable(
	id kernel.UUID,
	number int,
	capacity int,
	status Status,
	assignedWaiterID *kernel.UUID,
	activeOrderID *kernel.UUID,
) (*Table, error) {
	t, err := NewTable(id, number, capacity)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if status != Occupied && assignedWaiterID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignedWaiterID",
			fmt.Errorf("waiter assigned to a table in %s status", status))
	}

	t.status = status
	t.assignedWaiterID = assignedWaiterID
	t.activeOrderID = activeOrderID
	return t, nil
}

// Validate ensures the Table instance was properly constructed.
func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

// IsEqual compares two tables by their unique identifiers.
func (t *Table) IsEqual(other *Table) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the table's unique identifier.
func (t *Table) ID() kernel.UUID {
	return t.id
}

// Number returns the table number shown to staff.
func (t *Table) Number() int {
	return t.number
}

// Capacity returns the number of seats at the table.
func (t *Table) Capacity() int {
	return t.capacity
}

// Status returns the current availability status.
func (t *Table) Status() Status {
	return t.status
}

// AssignedWaiter returns the id of the waiter serving the table.
// Returns nil unless the table is Occupied.
func (t *Table) AssignedWaiter() *kernel.UUID {
	return t.assignedWaiterID
}

// ActiveOrder returns the id of the current non-terminal order at the table.
// Returns nil when no order is active.
func (t *Table) ActiveOrder() *kernel.UUID {
	return t.activeOrderID
}

// Occupy seats guests at the table, assigning the waiter and the newly opened
// order. Only an Available table can be occupied.
func (t *Table) Occupy(waiterID kernel.UUID, orderID kernel.UUID) error {
	if err := errors.Join(waiterID.Validate(), orderID.Validate()); err != nil {
		return err
	}

	newStatus, err := t.status.TransitionTo(Occupied)
	if err != nil {
		return err
	}

	t.status = newStatus
	t.assignedWaiterID = &waiterID
	t.activeOrderID = &orderID
	return nil
}

// MarkDirty releases the table after its order reached a terminal status.
// The waiter assignment and the active order reference are cleared.
func (t *Table) MarkDirty() error {
	newStatus, err := t.status.TransitionTo(Dirty)
	if err != nil {
		return err
	}

	t.status = newStatus
	t.assignedWaiterID = nil
	t.activeOrderID = nil
	return nil
}

// MarkAvailable returns a bussed table to service.
func (t *Table) MarkAvailable() error {
	newStatus, err := t.status.TransitionTo(Available)
	if err != nil {
		return err
	}

	t.status = newStatus
	return nil
}

// ChangeStatus moves the table to the requested status through the state
// machine. It is the generic path behind manager and busboy status edits;
// order creation and closing use Occupy and MarkDirty so that the waiter and
// order references stay consistent.
func (t *Table) ChangeStatus(next Status) error {
	switch next {
	case Dirty:
		return t.MarkDirty()
	case Available:
		return t.MarkAvailable()
	default:
		newStatus, err := t.status.TransitionTo(next)
		if err != nil {
			return err
		}
		t.status = newStatus
		return nil
	}
}

func (t *Table) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Table) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("table number",
			fmt.Errorf("%d is not greater than 0", number))
	}
	t.number = number
	return nil
}

func (t *Table) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%d is not greater than 0", capacity))
	}
	t.capacity = capacity
	return nil
}
