package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tableside/internal/core/application/notify"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/staff"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"
)

// Clock supplies the current time. Injected so tests can freeze it.
type Clock func() time.Time

type pendingKind string

const (
	pendingTable            pendingKind = "table"
	pendingOrder            pendingKind = "order"
	pendingTimeRecordAdd    pendingKind = "time_record_add"
	pendingTimeRecordUpdate pendingKind = "time_record_update"
)

type pendingWrite struct {
	kind pendingKind
	id   kernel.UUID
}

// Coordinator is the coordination service. All entity state lives in its
// maps and every mutation goes through its write lock.
type Coordinator struct {
	mu sync.RWMutex

	tables      map[kernel.UUID]*table.Table
	orders      map[kernel.UUID]*order.Order
	itemIndex   map[kernel.UUID]kernel.UUID
	users       map[kernel.UUID]*staff.User
	usersByName map[string]*staff.User
	menuItems   map[kernel.UUID]*menu.MenuItem
	openShifts  map[kernel.UUID]*staff.TimeRecord

	pending        map[pendingWrite]struct{}
	unsavedRecords map[kernel.UUID]*staff.TimeRecord

	uowFactory  ports.UnitOfWorkFactory
	userRepo    ports.UserRepository
	menuRepo    ports.MenuItemRepository
	timeRepo    ports.TimeRecordRepository
	activityLog ports.ActivityLog

	bus    *notify.Bus
	clock  Clock
	logger *slog.Logger
}

// NewCoordinator assembles a coordination service. Call Start before use to
// warm the in-memory state from storage.
func NewCoordinator(
	uowFactory ports.UnitOfWorkFactory,
	userRepo ports.UserRepository,
	menuRepo ports.MenuItemRepository,
	timeRepo ports.TimeRecordRepository,
	activityLog ports.ActivityLog,
	bus *notify.Bus,
	clock Clock,
	logger *slog.Logger,
) (*Coordinator, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if userRepo == nil {
		return nil, errs.NewValueIsRequiredError("userRepo")
	}
	if menuRepo == nil {
		return nil, errs.NewValueIsRequiredError("menuRepo")
	}
	if timeRepo == nil {
		return nil, errs.NewValueIsRequiredError("timeRepo")
	}
	if activityLog == nil {
		return nil, errs.NewValueIsRequiredError("activityLog")
	}
	if bus == nil {
		return nil, errs.NewValueIsRequiredError("bus")
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Coordinator{
		tables:         make(map[kernel.UUID]*table.Table),
		orders:         make(map[kernel.UUID]*order.Order),
		itemIndex:      make(map[kernel.UUID]kernel.UUID),
		users:          make(map[kernel.UUID]*staff.User),
		usersByName:    make(map[string]*staff.User),
		menuItems:      make(map[kernel.UUID]*menu.MenuItem),
		openShifts:     make(map[kernel.UUID]*staff.TimeRecord),
		pending:        make(map[pendingWrite]struct{}),
		unsavedRecords: make(map[kernel.UUID]*staff.TimeRecord),
		uowFactory:     uowFactory,
		userRepo:       userRepo,
		menuRepo:       menuRepo,
		timeRepo:       timeRepo,
		activityLog:    activityLog,
		bus:            bus,
		clock:          clock,
		logger:         logger.With("component", "coordinator"),
	}, nil
}

// Start loads users, menu, tables, active orders and open shifts into memory.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	users, err := c.userRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	for _, u := range users {
		c.users[u.ID()] = u
		c.usersByName[u.Username()] = u
	}

	items, err := c.menuRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	for _, m := range items {
		c.menuItems[m.ID()] = m
	}

	openRecords, err := c.timeRepo.GetAllOpen(ctx)
	if err != nil {
		return fmt.Errorf("load open shifts: %w", err)
	}
	for _, rec := range openRecords {
		c.openShifts[rec.UserID()] = rec
	}

	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin load transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tables, err := uow.TableRepository().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	for _, t := range tables {
		c.tables[t.ID()] = t
	}

	orders, err := uow.OrderRepository().GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("load active orders: %w", err)
	}
	for _, o := range orders {
		c.orders[o.ID()] = o
		for _, it := range o.Items() {
			c.itemIndex[it.ID()] = o.ID()
		}
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit load transaction: %w", err)
	}

	c.logger.Info("coordination state loaded",
		"users", len(c.users),
		"menuItems", len(c.menuItems),
		"tables", len(c.tables),
		"activeOrders", len(c.orders),
		"openShifts", len(c.openShifts))
	return nil
}

// Shutdown makes a final attempt to drain the pending-write set.
func (c *Coordinator) Shutdown(ctx context.Context) {
	if err := c.FlushPending(ctx); err != nil {
		c.logger.Error("final pending flush failed", "error", err)
	}
	c.logger.Info("coordination service stopped")
}

// PendingWrites reports how many aggregates still await persistence.
func (c *Coordinator) PendingWrites() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pending)
}

// FlushPending retries every write that previously failed. Aggregates that
// persist successfully leave the pending set; the rest stay for the next run.
func (c *Coordinator) FlushPending(ctx context.Context) error {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return nil
	}
	writes := make([]pendingWrite, 0, len(c.pending))
	for w := range c.pending {
		writes = append(writes, w)
	}
	c.mu.Unlock()

	var failed int
	for _, w := range writes {
		if err := c.retryWrite(ctx, w); err != nil {
			failed++
			c.logger.Warn("pending write retry failed",
				"kind", string(w.kind), "id", w.id.String(), "error", err)
			continue
		}
		c.mu.Lock()
		delete(c.pending, w)
		switch w.kind {
		case pendingOrder:
			if o, ok := c.orders[w.id]; ok && o.IsTerminal() {
				c.dropOrderLocked(o)
			}
		case pendingTimeRecordAdd, pendingTimeRecordUpdate:
			c.forgetRecordIfSavedLocked(w.id)
		}
		c.mu.Unlock()
	}
	if failed > 0 {
		return errs.NewStorageError("flush pending writes",
			fmt.Errorf("%d of %d writes still failing", failed, len(writes)))
	}
	return nil
}

// retryWrite holds the read lock for the whole write: repositories read
// aggregate internals while serializing, and mutations write those same
// aggregates under the write lock.
func (c *Coordinator) retryWrite(ctx context.Context, w pendingWrite) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch w.kind {
	case pendingTable:
		t, ok := c.tables[w.id]
		if !ok {
			return nil
		}
		return c.persistTable(ctx, t)
	case pendingOrder:
		o, ok := c.orders[w.id]
		if !ok {
			return nil
		}
		return c.persistOrder(ctx, o)
	case pendingTimeRecordAdd, pendingTimeRecordUpdate:
		rec := c.unsavedRecords[w.id]
		if rec == nil {
			return nil
		}
		if w.kind == pendingTimeRecordAdd {
			return c.timeRepo.Add(ctx, rec)
		}
		return c.timeRepo.Update(ctx, rec)
	default:
		return nil
	}
}

func (c *Coordinator) persistTable(ctx context.Context, t *table.Table) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	if err := uow.TableRepository().Update(ctx, t); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (c *Coordinator) persistOrder(ctx context.Context, o *order.Order) error {
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
	return uow.Commit(ctx)
}

// markPending records a failed write for later retry. Caller holds the lock.
func (c *Coordinator) markPending(kind pendingKind, id kernel.UUID) {
	c.pending[pendingWrite{kind: kind, id: id}] = struct{}{}
}

// markPendingRecord pins a time record alongside its pending write so the
// retry can reach it after the shift leaves the open set. Caller holds the
// lock.
func (c *Coordinator) markPendingRecord(kind pendingKind, rec *staff.TimeRecord) {
	c.markPending(kind, rec.ID())
	c.unsavedRecords[rec.ID()] = rec
}

// forgetRecordIfSavedLocked drops the pinned record once no write for it is
// pending any more. Caller holds the lock.
func (c *Coordinator) forgetRecordIfSavedLocked(id kernel.UUID) {
	for _, kind := range []pendingKind{pendingTimeRecordAdd, pendingTimeRecordUpdate} {
		if _, waiting := c.pending[pendingWrite{kind: kind, id: id}]; waiting {
			return
		}
	}
	delete(c.unsavedRecords, id)
}

// appendActivity writes an audit entry. Failures are logged and swallowed;
// the audit trail never blocks an operation.
func (c *Coordinator) appendActivity(ctx context.Context, actionType, description string) {
	if err := c.activityLog.Append(ctx, actionType, description); err != nil {
		c.logger.Warn("activity log append failed",
			"actionType", actionType, "error", err)
	}
}
