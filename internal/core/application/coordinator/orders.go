package coordinator

import (
	"context"
	"fmt"

	"tableside/internal/core/application/notify"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/pkg/errs"
)

// CreateOrder opens a new order at the given table and seats it: the table
// moves to Occupied, assigned to the waiter, and the new order becomes the
// table's active order. Rejected with *errs.TableNotAvailableError when the
// table already carries one.
func (c *Coordinator) CreateOrder(ctx context.Context, tableID, waiterID kernel.UUID) (OrderView, error) {
	c.mu.Lock()

	waiter, ok := c.users[waiterID]
	if !ok {
		c.mu.Unlock()
		return OrderView{}, errs.NewObjectNotFoundError("waiterId", waiterID)
	}
	t, ok := c.tables[tableID]
	if !ok {
		c.mu.Unlock()
		return OrderView{}, errs.NewObjectNotFoundError("tableId", tableID)
	}
	if t.Status() != table.Available || t.ActiveOrder() != nil {
		c.mu.Unlock()
		return OrderView{}, errs.NewTableNotAvailableError(t.Number(), t.Status().String())
	}

	o, err := order.NewOrder(kernel.NewUUID(), tableID, waiterID, c.clock())
	if err != nil {
		c.mu.Unlock()
		return OrderView{}, err
	}
	if err := t.Occupy(waiterID, o.ID()); err != nil {
		c.mu.Unlock()
		return OrderView{}, err
	}
	c.orders[o.ID()] = o

	var storageErr error
	if err := c.persistNewOrder(ctx, o, t); err != nil {
		c.markPending(pendingOrder, o.ID())
		c.markPending(pendingTable, t.ID())
		storageErr = errs.NewStorageError("create order", err)
	}
	view := snapshotOrder(o)
	tableNumber := t.Number()
	c.mu.Unlock()

	c.bus.Publish(notify.TableStatusChanged{TableID: tableID, Status: table.Occupied})
	c.appendActivity(ctx, "ORDER_CREATED",
		fmt.Sprintf("%s opened order %s at table %d", waiter.Username(), o.ID(), tableNumber))
	return view, storageErr
}

// AddOrderItem appends a line item to an open order. The menu item's current
// price is snapshot onto the item so later menu edits never change what the
// guest owes.
func (c *Coordinator) AddOrderItem(ctx context.Context, orderID, menuItemID kernel.UUID, quantity, seatNumber int, instructions string) (ItemView, error) {
	c.mu.Lock()

	o, ok := c.orders[orderID]
	if !ok {
		c.mu.Unlock()
		return ItemView{}, errs.NewObjectNotFoundError("orderId", orderID)
	}
	m, ok := c.menuItems[menuItemID]
	if !ok {
		c.mu.Unlock()
		return ItemView{}, errs.NewObjectNotFoundError("menuItemId", menuItemID)
	}
	if !m.IsAvailable() {
		c.mu.Unlock()
		return ItemView{}, errs.NewValueIsInvalidErrorWithCause("menuItemId",
			fmt.Errorf("menu item %q is not available", m.Name()))
	}

	item, err := order.NewItem(kernel.NewUUID(), orderID, menuItemID, quantity, seatNumber, m.Price(), instructions)
	if err != nil {
		c.mu.Unlock()
		return ItemView{}, err
	}
	if err := o.AddItem(item); err != nil {
		c.mu.Unlock()
		return ItemView{}, err
	}
	c.itemIndex[item.ID()] = orderID

	var storageErr error
	if err := c.persistOrder(ctx, o); err != nil {
		c.markPending(pendingOrder, o.ID())
		storageErr = errs.NewStorageError("update order", err)
	}
	view := snapshotItem(item)
	c.mu.Unlock()

	c.appendActivity(ctx, "ITEM_ADDED",
		fmt.Sprintf("%dx %s added to order %s", quantity, m.Name(), orderID))
	return view, storageErr
}

// AddItemAddon applies a menu addon to an order item. Only items still in
// Ordered accept addons; once the kitchen has the ticket the line is fixed.
func (c *Coordinator) AddItemAddon(ctx context.Context, orderItemID, addonID kernel.UUID) (ItemView, error) {
	c.mu.Lock()

	o, item, err := c.lockedItem(orderItemID)
	if err != nil {
		c.mu.Unlock()
		return ItemView{}, err
	}
	m, ok := c.menuItems[item.MenuItemID()]
	if !ok {
		c.mu.Unlock()
		return ItemView{}, errs.NewObjectNotFoundError("menuItemId", item.MenuItemID())
	}
	menuAddon := m.AddonByID(addonID)
	if menuAddon == nil {
		c.mu.Unlock()
		return ItemView{}, errs.NewObjectNotFoundError("addonId", addonID)
	}

	addon, err := order.NewItemAddon(kernel.NewUUID(), orderItemID, addonID, menuAddon.Price())
	if err != nil {
		c.mu.Unlock()
		return ItemView{}, err
	}
	if err := item.AddAddon(addon); err != nil {
		c.mu.Unlock()
		return ItemView{}, err
	}

	var storageErr error
	if err := c.persistOrder(ctx, o); err != nil {
		c.markPending(pendingOrder, o.ID())
		storageErr = errs.NewStorageError("update order", err)
	}
	view := snapshotItem(item)
	c.mu.Unlock()

	c.appendActivity(ctx, "ADDON_ADDED",
		fmt.Sprintf("addon %s added to item %s", menuAddon.Name(), orderItemID))
	return view, storageErr
}

// AdvanceOrderItemStatus moves one line item through the kitchen flow and
// re-derives the owning order's status from its items.
func (c *Coordinator) AdvanceOrderItemStatus(ctx context.Context, orderItemID kernel.UUID, next order.ItemStatus) (OrderView, error) {
	c.mu.Lock()

	o, _, err := c.lockedItem(orderItemID)
	if err != nil {
		c.mu.Unlock()
		return OrderView{}, err
	}

	if err := o.AdvanceItem(orderItemID, next, c.clock()); err != nil {
		c.mu.Unlock()
		return OrderView{}, err
	}

	var storageErr error
	if err := c.persistOrder(ctx, o); err != nil {
		c.markPending(pendingOrder, o.ID())
		storageErr = errs.NewStorageError("update order", err)
	}
	view := snapshotOrder(o)
	c.mu.Unlock()

	c.appendActivity(ctx, "ITEM_STATUS_CHANGED",
		fmt.Sprintf("item %s moved to %s, order %s now %s", orderItemID, next, view.ID, view.Status))
	return view, storageErr
}

// CancelOrder voids an open order. Unfinished items are cancelled with it and
// the table goes to Dirty for bussing.
func (c *Coordinator) CancelOrder(ctx context.Context, orderID kernel.UUID) (OrderView, error) {
	c.mu.Lock()

	o, ok := c.orders[orderID]
	if !ok {
		c.mu.Unlock()
		return OrderView{}, errs.NewObjectNotFoundError("orderId", orderID)
	}
	if err := o.Cancel(c.clock()); err != nil {
		c.mu.Unlock()
		return OrderView{}, err
	}

	t := c.tables[o.TableID()]
	if t != nil {
		if err := t.MarkDirty(); err != nil {
			c.logger.Warn("table not released on cancel",
				"tableId", t.ID().String(), "error", err)
			t = nil
		}
	}

	var storageErr error
	if err := c.persistClose(ctx, o, t); err != nil {
		c.markPending(pendingOrder, o.ID())
		if t != nil {
			c.markPending(pendingTable, t.ID())
		}
		storageErr = errs.NewStorageError("cancel order", err)
	}
	view := snapshotOrder(o)
	c.dropOrderLocked(o)
	c.mu.Unlock()

	if t != nil {
		c.bus.Publish(notify.TableStatusChanged{TableID: view.TableID, Status: table.Dirty})
	}
	c.appendActivity(ctx, "ORDER_CANCELLED", fmt.Sprintf("order %s cancelled", orderID))
	return view, storageErr
}

// CloseOrder settles an open order: every item must be Delivered or
// Cancelled, the tip is applied, tax computed, and the order moves to Paid.
// The table goes to Dirty for bussing. Returns the receipt.
func (c *Coordinator) CloseOrder(ctx context.Context, orderID kernel.UUID, paymentMethod string, tip kernel.Money) (order.Receipt, error) {
	c.mu.Lock()

	o, ok := c.orders[orderID]
	if !ok {
		c.mu.Unlock()
		return order.Receipt{}, errs.NewObjectNotFoundError("orderId", orderID)
	}
	receipt, err := o.Close(paymentMethod, tip, c.clock())
	if err != nil {
		c.mu.Unlock()
		return order.Receipt{}, err
	}

	t := c.tables[o.TableID()]
	if t != nil {
		if err := t.MarkDirty(); err != nil {
			c.logger.Warn("table not released on close",
				"tableId", t.ID().String(), "error", err)
			t = nil
		}
	}

	var storageErr error
	if err := c.persistClose(ctx, o, t); err != nil {
		c.markPending(pendingOrder, o.ID())
		if t != nil {
			c.markPending(pendingTable, t.ID())
		}
		storageErr = errs.NewStorageError("close order", err)
	}
	tableID := o.TableID()
	c.dropOrderLocked(o)
	c.mu.Unlock()

	if t != nil {
		c.bus.Publish(notify.TableStatusChanged{TableID: tableID, Status: table.Dirty})
	}
	c.appendActivity(ctx, "ORDER_CLOSED",
		fmt.Sprintf("order %s paid by %s, total %s", orderID, paymentMethod, receipt.Total))
	return receipt, storageErr
}

// OpenOrders returns a snapshot of every order still in flight.
func (c *Coordinator) OpenOrders() []OrderView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	views := make([]OrderView, 0, len(c.orders))
	for _, o := range c.orders {
		views = append(views, snapshotOrder(o))
	}
	return views
}

// lockedItem resolves an order item id to its owning order and the item
// itself. Caller holds the lock.
func (c *Coordinator) lockedItem(orderItemID kernel.UUID) (*order.Order, *order.Item, error) {
	orderID, ok := c.itemIndex[orderItemID]
	if !ok {
		return nil, nil, errs.NewObjectNotFoundError("orderItemId", orderItemID)
	}
	o, ok := c.orders[orderID]
	if !ok {
		return nil, nil, errs.NewObjectNotFoundError("orderId", orderID)
	}
	item := o.ItemByID(orderItemID)
	if item == nil {
		return nil, nil, errs.NewObjectNotFoundError("orderItemId", orderItemID)
	}
	return o, item, nil
}

// dropOrderLocked evicts a terminal order from the in-memory maps. Storage
// keeps the full history. Orders with failed writes stay until the pending
// set drains. Caller holds the lock.
func (c *Coordinator) dropOrderLocked(o *order.Order) {
	if _, waiting := c.pending[pendingWrite{kind: pendingOrder, id: o.ID()}]; waiting {
		return
	}
	for _, it := range o.Items() {
		delete(c.itemIndex, it.ID())
	}
	delete(c.orders, o.ID())
}

// persistNewOrder writes a fresh order and its occupied table in one
// transaction.
func (c *Coordinator) persistNewOrder(ctx context.Context, o *order.Order, t *table.Table) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}
	if err := uow.TableRepository().Update(ctx, t); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// persistClose writes a settled or cancelled order together with its table
// in one transaction. The table may be nil when it could not be released.
func (c *Coordinator) persistClose(ctx context.Context, o *order.Order, t *table.Table) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if t != nil {
		if err := uow.TableRepository().Update(ctx, t); err != nil {
			return err
		}
	}
	return uow.Commit(ctx)
}
