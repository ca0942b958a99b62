package order

import (
	"errors"
	"fmt"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory methods.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is one menu item quantity within an order, individually tracked through
// preparation. The price is snapshotted when the waiter adds the item; later
// menu price changes never affect placed orders.
//
// Item follows these invariants:
//   - Quantity must be positive; seat number must not be negative
//   - The snapshot price is immutable after construction
//   - Status transitions follow the item state machine (see ItemStatus)
//   - prepStart is stamped on entering InPreparation, completionTime on Ready
type Item struct {
	id           kernel.UUID
	orderID      kernel.UUID
	menuItemID   kernel.UUID
	quantity     int
	seatNumber   int
	price        kernel.Money
	instructions string
	status       ItemStatus

	prepStart      *time.Time
	completionTime *time.Time

	addons []*ItemAddon

	isConstructed bool
}

// NewItem creates a new order item in Ordered status with a snapshot price.
//
// Parameters:
//   - id: Unique identifier for the item
//   - orderID: The owning order
//   - menuItemID: The menu item being ordered
//   - quantity: Number of units (must be positive)
//   - seatNumber: Seat the item is for (0 means the whole table)
//   - price: Unit price captured at order time
//   - instructions: Free-form kitchen instructions, may be empty
func NewItem(
	id kernel.UUID,
	orderID kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	seatNumber int,
	price kernel.Money,
	instructions string,
) (*Item, error) {
	item := &Item{
		price:         price,
		instructions:  instructions,
		status:        ItemOrdered,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setSeatNumber(seatNumber),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an Item from persistence, including its status,
// timing stamps and addons.
func RestoreItem(
	id kernel.UUID,
	orderID kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	seatNumber int,
	price kernel.Money,
	instructions string,
	status ItemStatus,
	prepStart *time.Time,
	completionTime *time.Time,
	addons []*ItemAddon,
) (*Item, error) {
	item, err := NewItem(id, orderID, menuItemID, quantity, seatNumber, price, instructions)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	item.status = status
	item.prepStart = prepStart
	item.completionTime = completionTime
	item.addons = addons
	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// IsEqual compares two items by their unique identifiers.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderID returns the id of the owning order.
func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

// MenuItemID returns the id of the ordered menu item.
func (i *Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Quantity returns the number of units ordered.
func (i *Item) Quantity() int {
	return i.quantity
}

// SeatNumber returns the seat the item is for; 0 means the whole table.
func (i *Item) SeatNumber() int {
	return i.seatNumber
}

// Price returns the unit price snapshotted at order time.
func (i *Item) Price() kernel.Money {
	return i.price
}

// Instructions returns the kitchen instructions for the item.
func (i *Item) Instructions() string {
	return i.instructions
}

// Status returns the item's current preparation status.
func (i *Item) Status() ItemStatus {
	return i.status
}

// PrepStart returns when a cook started the item, nil before that.
func (i *Item) PrepStart() *time.Time {
	return i.prepStart
}

// CompletionTime returns when the item became ready, nil before that.
func (i *Item) CompletionTime() *time.Time {
	return i.completionTime
}

// Addons returns the addons attached to the item, in the order they were added.
func (i *Item) Addons() []*ItemAddon {
	return i.addons
}

// LineTotal returns the item's contribution to the order subtotal: unit price
// times quantity plus every addon price. A cancelled item contributes $0.00.
func (i *Item) LineTotal() kernel.Money {
	if i.status == ItemCancelled {
		return kernel.Zero()
	}

	total := i.price.MultiplyQty(i.quantity)
	for _, addon := range i.addons {
		total = total.Add(addon.Price())
	}
	return total
}

// AddAddon attaches an addon with a snapshotted price. Addons can only be
// added while the item has not been started.
func (i *Item) AddAddon(addon *ItemAddon) error {
	if err := addon.Validate(); err != nil {
		return err
	}
	if i.status != ItemOrdered {
		return errs.NewValueIsInvalidErrorWithCause("addon",
			fmt.Errorf("item is already %s", i.status))
	}

	i.addons = append(i.addons, addon)
	return nil
}

// AdvanceTo moves the item to the requested status, stamping preparation and
// completion times at the appropriate transitions.
func (i *Item) AdvanceTo(next ItemStatus, now time.Time) error {
	newStatus, err := i.status.TransitionTo(next)
	if err != nil {
		return err
	}

	i.status = newStatus
	switch newStatus {
	case ItemInPreparation:
		i.prepStart = &now
	case ItemReady:
		i.completionTime = &now
	}
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *Item) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setSeatNumber(seatNumber int) error {
	if seatNumber < 0 {
		return errs.NewValueIsInvalidErrorWithCause("seat number",
			fmt.Errorf("%d is negative", seatNumber))
	}
	i.seatNumber = seatNumber
	return nil
}
