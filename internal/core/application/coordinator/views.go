package coordinator

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/staff"
	"tableside/internal/core/domain/model/table"
)

// View types are immutable copies taken while the service lock is held.
// Callers keep them as long as they like without racing live aggregates.

// TableView is a point-in-time copy of a table's state.
type TableView struct {
	ID             kernel.UUID
	Number         int
	Capacity       int
	Status         table.Status
	AssignedWaiter *kernel.UUID
	ActiveOrder    *kernel.UUID
}

// OrderView is a point-in-time copy of an order and its items.
type OrderView struct {
	ID            kernel.UUID
	TableID       kernel.UUID
	WaiterID      kernel.UUID
	Status        order.Status
	CreatedAt     time.Time
	Items         []ItemView
	Subtotal      kernel.Money
	PaymentMethod string
	TipAmount     kernel.Money
	TaxAmount     kernel.Money
	TotalAmount   kernel.Money
	PaidAt        *time.Time
}

// ItemView is a point-in-time copy of an order item.
type ItemView struct {
	ID             kernel.UUID
	MenuItemID     kernel.UUID
	Quantity       int
	SeatNumber     int
	Price          kernel.Money
	Instructions   string
	Status         order.ItemStatus
	PrepStart      *time.Time
	CompletionTime *time.Time
	Addons         []AddonView
	LineTotal      kernel.Money
}

// AddonView is a point-in-time copy of an addon applied to an order item.
type AddonView struct {
	ID      kernel.UUID
	AddonID kernel.UUID
	Price   kernel.Money
}

// TimeRecordView is a point-in-time copy of a shift record.
type TimeRecordView struct {
	ID         kernel.UUID
	UserID     kernel.UUID
	ClockIn    time.Time
	ClockOut   *time.Time
	TotalHours float64
}

func snapshotTable(t *table.Table) TableView {
	v := TableView{
		ID:       t.ID(),
		Number:   t.Number(),
		Capacity: t.Capacity(),
		Status:   t.Status(),
	}
	if w := t.AssignedWaiter(); w != nil {
		id := *w
		v.AssignedWaiter = &id
	}
	if o := t.ActiveOrder(); o != nil {
		id := *o
		v.ActiveOrder = &id
	}
	return v
}

func snapshotOrder(o *order.Order) OrderView {
	items := o.Items()
	v := OrderView{
		ID:            o.ID(),
		TableID:       o.TableID(),
		WaiterID:      o.WaiterID(),
		Status:        o.Status(),
		CreatedAt:     o.CreatedAt(),
		Items:         make([]ItemView, 0, len(items)),
		Subtotal:      o.Subtotal(),
		PaymentMethod: o.PaymentMethod(),
		TipAmount:     o.TipAmount(),
		TaxAmount:     o.TaxAmount(),
		TotalAmount:   o.TotalAmount(),
	}
	if paidAt := o.PaidAt(); paidAt != nil {
		ts := *paidAt
		v.PaidAt = &ts
	}
	for _, it := range items {
		v.Items = append(v.Items, snapshotItem(it))
	}
	return v
}

func snapshotItem(it *order.Item) ItemView {
	addons := it.Addons()
	v := ItemView{
		ID:           it.ID(),
		MenuItemID:   it.MenuItemID(),
		Quantity:     it.Quantity(),
		SeatNumber:   it.SeatNumber(),
		Price:        it.Price(),
		Instructions: it.Instructions(),
		Status:       it.Status(),
		Addons:       make([]AddonView, 0, len(addons)),
		LineTotal:    it.LineTotal(),
	}
	if ps := it.PrepStart(); ps != nil {
		ts := *ps
		v.PrepStart = &ts
	}
	if ct := it.CompletionTime(); ct != nil {
		ts := *ct
		v.CompletionTime = &ts
	}
	for _, a := range addons {
		v.Addons = append(v.Addons, AddonView{
			ID:      a.ID(),
			AddonID: a.AddonID(),
			Price:   a.Price(),
		})
	}
	return v
}

func snapshotTimeRecord(r *staff.TimeRecord) TimeRecordView {
	v := TimeRecordView{
		ID:         r.ID(),
		UserID:     r.UserID(),
		ClockIn:    r.ClockIn(),
		TotalHours: r.TotalHours(),
	}
	if out := r.ClockOut(); out != nil {
		ts := *out
		v.ClockOut = &ts
	}
	return v
}
