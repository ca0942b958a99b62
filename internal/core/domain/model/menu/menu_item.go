// Package menu holds the menu reference data. Menu prices are the source of
// the snapshots taken when items are added to orders; editing them never
// affects placed orders.
package menu

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrMenuItemIsNotConstructed is returned when a MenuItem instance was not
// created through the NewMenuItem factory method.
var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")

// MenuItem is a dish or drink offered on the menu.
type MenuItem struct {
	id        kernel.UUID
	name      string
	category  string
	price     kernel.Money
	available bool

	addons []*Addon

	isConstructed bool
}

// NewMenuItem creates a menu item with its current price.
func NewMenuItem(id kernel.UUID, name, category string, price kernel.Money, available bool) (*MenuItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("menu item name")
	}

	return &MenuItem{
		id:            id,
		name:          name,
		category:      category,
		price:         price,
		available:     available,
		isConstructed: true,
	}, nil
}

// Validate ensures the MenuItem instance was properly constructed.
func (m *MenuItem) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMenuItemIsNotConstructed
	}
	return nil
}

// ID returns the menu item's unique identifier.
func (m *MenuItem) ID() kernel.UUID {
	return m.id
}

// Name returns the display name.
func (m *MenuItem) Name() string {
	return m.name
}

// Category returns the menu section the item belongs to.
func (m *MenuItem) Category() string {
	return m.category
}

// Price returns the current menu price.
func (m *MenuItem) Price() kernel.Money {
	return m.price
}

// IsAvailable reports whether the item can currently be ordered.
func (m *MenuItem) IsAvailable() bool {
	return m.available
}

// Addons returns the addons offered with the item.
func (m *MenuItem) Addons() []*Addon {
	return m.addons
}

// AddonByID returns the addon with the given id, or nil when the item offers
// no such addon.
func (m *MenuItem) AddonByID(addonID kernel.UUID) *Addon {
	for _, addon := range m.addons {
		if addon.ID().IsEqual(addonID) {
			return addon
		}
	}
	return nil
}

// AttachAddon registers an addon as offered with the item.
func (m *MenuItem) AttachAddon(addon *Addon) error {
	if err := addon.Validate(); err != nil {
		return err
	}
	m.addons = append(m.addons, addon)
	return nil
}

// Addon is an optional extra offered with a menu item.
type Addon struct {
	id    kernel.UUID
	name  string
	price kernel.Money

	isConstructed bool
}

// ErrAddonIsNotConstructed is returned when an Addon instance was not created
// through the NewAddon factory method.
var ErrAddonIsNotConstructed = errors.New("Addon must be created via NewAddon constructor")

// NewAddon creates a menu addon with its current price.
func NewAddon(id kernel.UUID, name string, price kernel.Money) (*Addon, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("addon name")
	}

	return &Addon{
		id:            id,
		name:          name,
		price:         price,
		isConstructed: true,
	}, nil
}

// Validate ensures the Addon instance was properly constructed.
func (a *Addon) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddonIsNotConstructed
	}
	return nil
}

// ID returns the addon's unique identifier.
func (a *Addon) ID() kernel.UUID {
	return a.id
}

// Name returns the display name.
func (a *Addon) Name() string {
	return a.name
}

// Price returns the current addon price.
func (a *Addon) Price() kernel.Money {
	return a.price
}
