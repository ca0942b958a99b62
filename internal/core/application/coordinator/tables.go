package coordinator

import (
	"context"
	"fmt"
	"sort"

	"tableside/internal/core/application/notify"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/pkg/errs"
)

// RegisterTable adds a new table to the floor plan. The table starts Available.
func (c *Coordinator) RegisterTable(ctx context.Context, number, capacity int) (TableView, error) {
	c.mu.Lock()

	for _, existing := range c.tables {
		if existing.Number() == number {
			c.mu.Unlock()
			return TableView{}, errs.NewValueIsInvalidErrorWithCause("number",
				fmt.Errorf("table %d already exists", number))
		}
	}

	t, err := table.NewTable(kernel.NewUUID(), number, capacity)
	if err != nil {
		c.mu.Unlock()
		return TableView{}, err
	}
	c.tables[t.ID()] = t

	var storageErr error
	if err := c.addTable(ctx, t); err != nil {
		c.markPending(pendingTable, t.ID())
		storageErr = errs.NewStorageError("register table", err)
	}
	view := snapshotTable(t)
	c.mu.Unlock()

	c.appendActivity(ctx, "TABLE_REGISTERED",
		fmt.Sprintf("table %d registered with capacity %d", number, capacity))
	return view, storageErr
}

// SetTableStatus moves a table through its status machine on behalf of
// actingUserID. Occupied is only entered through order creation, so direct
// requests for it are rejected here even though the entity's transition
// table allows it for Occupy.
func (c *Coordinator) SetTableStatus(ctx context.Context, tableID kernel.UUID, next table.Status, actingUserID kernel.UUID) (TableView, error) {
	c.mu.Lock()

	actor, ok := c.users[actingUserID]
	if !ok {
		c.mu.Unlock()
		return TableView{}, errs.NewObjectNotFoundError("actingUserId", actingUserID)
	}
	t, ok := c.tables[tableID]
	if !ok {
		c.mu.Unlock()
		return TableView{}, errs.NewObjectNotFoundError("tableId", tableID)
	}
	if next == table.Occupied {
		c.mu.Unlock()
		return TableView{}, errs.NewInvalidTransitionError("table", t.Status().String(), next.String())
	}

	if err := t.ChangeStatus(next); err != nil {
		c.mu.Unlock()
		return TableView{}, err
	}

	var storageErr error
	if err := c.persistTable(ctx, t); err != nil {
		c.markPending(pendingTable, t.ID())
		storageErr = errs.NewStorageError("update table", err)
	}
	view := snapshotTable(t)
	c.mu.Unlock()

	c.bus.Publish(notify.TableStatusChanged{TableID: tableID, Status: next})
	c.appendActivity(ctx, "TABLE_STATUS_CHANGED",
		fmt.Sprintf("%s set table %d to %s", actor.Username(), view.Number, next))
	return view, storageErr
}

// TablesForWaiter returns the tables currently assigned to the waiter,
// ordered by table number.
func (c *Coordinator) TablesForWaiter(waiterID kernel.UUID) []TableView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var views []TableView
	for _, t := range c.tables {
		if w := t.AssignedWaiter(); w != nil && w.IsEqual(waiterID) {
			views = append(views, snapshotTable(t))
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Number < views[j].Number
	})
	return views
}

// Tables returns every table ordered by table number. Used by the host and
// manager floor views.
func (c *Coordinator) Tables() []TableView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	views := make([]TableView, 0, len(c.tables))
	for _, t := range c.tables {
		views = append(views, snapshotTable(t))
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Number < views[j].Number
	})
	return views
}

func (c *Coordinator) addTable(ctx context.Context, t *table.Table) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	if err := uow.TableRepository().Add(ctx, t); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
