package order

import (
	"errors"
	"fmt"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// TaxRatePercent is the sales tax applied to the order subtotal at close.
const TaxRatePercent int64 = 10

// Order represents a customer's request for a table, composed of order items.
// It is the aggregate root that manages the order lifecycle from opening
// through kitchen preparation to payment or cancellation.
//
// Order follows these invariants:
//   - Must have valid identifiers for itself, its table and its waiter
//   - It exclusively owns its item sequence; insertion order is serve order
//   - Its status is derived from item statuses through DeriveStatus; it can
//     never report Ready or Delivered with an empty item set
//   - Once terminal (Paid or Cancelled) it is immutable except for the payment
//     fields written at close
//   - Totals are always derived from the items, never hand-set
type Order struct {
	id        kernel.UUID
	tableID   kernel.UUID
	waiterID  kernel.UUID
	createdAt time.Time
	status    Status

	items []*Item

	paymentMethod string
	tipAmount     kernel.Money
	taxAmount     kernel.Money
	totalAmount   kernel.Money
	paidAt        *time.Time

	isConstructed bool
}

// NewOrder creates a new Order in New status for the given table and waiter.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - tableID: The table the order is served at
//   - waiterID: The waiter who opened the order
//   - createdAt: Opening time
//
// Returns the created order, or a validation error if any identifier is invalid.
func NewOrder(id, tableID, waiterID kernel.UUID, createdAt time.Time) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableID(tableID),
		o.setWaiterID(waiterID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. The stored status is
// checked against the status derived from the items so a drifted row cannot
// resurrect an inconsistent aggregate.
func RestoreOrder(
	id, tableID, waiterID kernel.UUID,
	createdAt time.Time,
	status Status,
	items []*Item,
	paymentMethod string,
	tipAmount, taxAmount, totalAmount kernel.Money,
	paidAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, tableID, waiterID, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.items = items
	if status.IsTerminal() {
		o.status = status
	} else {
		o.status = DeriveStatus(items)
	}
	o.paymentMethod = paymentMethod
	o.tipAmount = tipAmount
	o.taxAmount = taxAmount
	o.totalAmount = totalAmount
	o.paidAt = paidAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TableID returns the id of the table the order is served at.
func (o *Order) TableID() kernel.UUID {
	return o.tableID
}

// WaiterID returns the id of the waiter who opened the order.
func (o *Order) WaiterID() kernel.UUID {
	return o.waiterID
}

// CreatedAt returns the opening time of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// IsTerminal reports whether the order is Paid or Cancelled.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// Items returns the owned item sequence in insertion (serve) order.
func (o *Order) Items() []*Item {
	return o.items
}

// ItemByID returns the owned item with the given id, or nil when the order has
// no such item.
func (o *Order) ItemByID(itemID kernel.UUID) *Item {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item
		}
	}
	return nil
}

// PaymentMethod returns the payment method recorded at close, empty before.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// TipAmount returns the tip recorded at close.
func (o *Order) TipAmount() kernel.Money {
	return o.tipAmount
}

// TaxAmount returns the tax recorded at close.
func (o *Order) TaxAmount() kernel.Money {
	return o.taxAmount
}

// TotalAmount returns the total (subtotal plus tax) recorded at close.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// PaidAt returns the payment time, nil before the order is closed.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// Subtotal returns the sum of all non-cancelled item line totals.
func (o *Order) Subtotal() kernel.Money {
	subtotal := kernel.Zero()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// AddItem appends an item to the order.
//
// Business rules:
//   - The order must not be terminal (returns *errs.OrderClosedError)
//   - The item must belong to this order
//
// The order status is re-derived afterwards; appending an Ordered item to an
// order whose earlier items are already ready pulls the order back to
// InProgress, which is what the kitchen display expects.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewOrderClosedError(o.id.String(), o.status.String())
	}
	if !item.OrderID().IsEqual(o.id) {
		return errs.NewValueIsInvalidErrorWithCause("order item",
			fmt.Errorf("item belongs to order %s", item.OrderID()))
	}

	o.items = append(o.items, item)
	o.syncStatus()
	return nil
}

// AdvanceItem moves the identified item to the requested status and re-derives
// the order status. The first item entering preparation moves the order from
// New to InProgress; the last item delivered moves it to Delivered.
func (o *Order) AdvanceItem(itemID kernel.UUID, next ItemStatus, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewOrderClosedError(o.id.String(), o.status.String())
	}

	item := o.ItemByID(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("orderItemId", itemID.String())
	}

	if err := item.AdvanceTo(next, now); err != nil {
		return err
	}

	o.syncStatus()
	return nil
}

// Cancel abandons the order. Allowed only from New or InProgress; every item
// not yet ready is cancelled with it.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	for _, item := range o.items {
		if item.Status() == ItemOrdered || item.Status() == ItemInPreparation {
			if err := item.AdvanceTo(ItemCancelled, now); err != nil {
				return err
			}
		}
	}

	o.status = newStatus
	return nil
}

// Close settles the order and produces its receipt.
//
// Business rules:
//   - Every item must be Delivered or Cancelled
//   - The order status machine must allow the transition to Paid, which also
//     rejects closing an empty order
//
// On success the order is Paid, the payment fields are recorded and the
// receipt totals are returned: subtotal, tax (TaxRatePercent of the subtotal),
// tip and total.
func (o *Order) Close(paymentMethod string, tip kernel.Money, now time.Time) (Receipt, error) {
	if paymentMethod == "" {
		return Receipt{}, errs.NewValueIsRequiredError("payment method")
	}

	for _, item := range o.items {
		if item.Status() != ItemDelivered && item.Status() != ItemCancelled {
			return Receipt{}, errs.NewInvalidTransitionError("order",
				o.status.String(), Paid.String())
		}
	}

	newStatus, err := o.status.Pay()
	if err != nil {
		return Receipt{}, err
	}

	receipt := NewReceipt(o.Subtotal(), tip)

	o.status = newStatus
	o.paymentMethod = paymentMethod
	o.tipAmount = receipt.Tip
	o.taxAmount = receipt.Tax
	o.totalAmount = receipt.Total
	o.paidAt = &now
	return receipt, nil
}

// syncStatus re-derives the order status from the item statuses.
// Terminal statuses are never overwritten.
func (o *Order) syncStatus() {
	if o.status.IsTerminal() {
		return
	}
	o.status = DeriveStatus(o.items)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	o.tableID = tableID
	return nil
}

func (o *Order) setWaiterID(waiterID kernel.UUID) error {
	if err := waiterID.Validate(); err != nil {
		return err
	}
	o.waiterID = waiterID
	return nil
}
