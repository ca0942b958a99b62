package order

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
)

// ErrItemAddonIsNotConstructed is returned when an ItemAddon instance was not
// created through the NewItemAddon factory method.
var ErrItemAddonIsNotConstructed = errors.New("ItemAddon must be created via NewItemAddon constructor")

// ItemAddon is an addon attached to an order item. Like the item itself, its
// price is snapshotted at order time and immutable thereafter.
type ItemAddon struct {
	id          kernel.UUID
	orderItemID kernel.UUID
	addonID     kernel.UUID
	price       kernel.Money

	isConstructed bool
}

// NewItemAddon creates a new addon with a snapshot price.
func NewItemAddon(id, orderItemID, addonID kernel.UUID, price kernel.Money) (*ItemAddon, error) {
	addon := &ItemAddon{
		price:         price,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		orderItemID.Validate(),
		addonID.Validate(),
	); err != nil {
		return nil, err
	}

	addon.id = id
	addon.orderItemID = orderItemID
	addon.addonID = addonID
	return addon, nil
}

// Validate ensures the ItemAddon instance was properly constructed.
func (a *ItemAddon) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrItemAddonIsNotConstructed
	}
	return nil
}

// ID returns the addon's unique identifier.
func (a *ItemAddon) ID() kernel.UUID {
	return a.id
}

// OrderItemID returns the id of the owning order item.
func (a *ItemAddon) OrderItemID() kernel.UUID {
	return a.orderItemID
}

// AddonID returns the id of the menu addon this snapshot was taken from.
func (a *ItemAddon) AddonID() kernel.UUID {
	return a.addonID
}

// Price returns the addon price snapshotted at order time.
func (a *ItemAddon) Price() kernel.Money {
	return a.price
}
