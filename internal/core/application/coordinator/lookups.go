package coordinator

import (
	"sort"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/core/domain/model/staff"
)

// Tolerant lookups for display code. Absence is an answer, not an error:
// a ticket naming a deleted user or menu item still has to render, so these
// return nil and the caller substitutes placeholder text.

// FindUserByID returns the user or nil.
func (c *Coordinator) FindUserByID(id kernel.UUID) *staff.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.users[id]
}

// FindUserByUsername returns the user or nil.
func (c *Coordinator) FindUserByUsername(username string) *staff.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.usersByName[username]
}

// FindMenuItemByID returns the menu item or nil.
func (c *Coordinator) FindMenuItemByID(id kernel.UUID) *menu.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.menuItems[id]
}

// Menu returns every menu item, including unavailable ones. Availability is
// a display concern for the ordering screen.
func (c *Coordinator) Menu() []*menu.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]*menu.MenuItem, 0, len(c.menuItems))
	for _, m := range c.menuItems {
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category() != items[j].Category() {
			return items[i].Category() < items[j].Category()
		}
		return items[i].Name() < items[j].Name()
	})
	return items
}

// FindTableByID returns a snapshot of the table or nil.
func (c *Coordinator) FindTableByID(id kernel.UUID) *TableView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[id]
	if !ok {
		return nil
	}
	v := snapshotTable(t)
	return &v
}

// FindOrderByID returns a snapshot of an in-flight order or nil. Settled and
// cancelled orders leave the in-memory set and are only found in storage.
func (c *Coordinator) FindOrderByID(id kernel.UUID) *OrderView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	o, ok := c.orders[id]
	if !ok {
		return nil
	}
	v := snapshotOrder(o)
	return &v
}
