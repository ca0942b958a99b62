// Package tablerepo provides data transfer objects and mapping functions for
// restaurant table persistence.
package tablerepo

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"

	"github.com/google/uuid"
)

// TableDTO represents the database structure for persisting tables. The
// waiter and order references are only set while the table is occupied.
type TableDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number           int        `gorm:"uniqueIndex"`
	Capacity         int
	Status           int        `gorm:"index"`
	AssignedWaiterID *uuid.UUID `gorm:"type:uuid"`
	ActiveOrderID    *uuid.UUID `gorm:"type:uuid"`
}

// TableName overrides GORM's default naming to avoid the reserved "tables".
func (TableDTO) TableName() string {
	return "restaurant_tables"
}

func fromDomain(aggregate *table.Table) TableDTO {
	var waiterID, orderID *uuid.UUID
	if id := aggregate.AssignedWaiter(); id != nil {
		raw := id.Bytes()
		waiterID = &raw
	}
	if id := aggregate.ActiveOrder(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return TableDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		Capacity:         aggregate.Capacity(),
		Status:           int(aggregate.Status()),
		AssignedWaiterID: waiterID,
		ActiveOrderID:    orderID,
	}
}

func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var waiterID, orderID *kernel.UUID
	if dto.AssignedWaiterID != nil {
		wID, waiterErr := kernel.UUIDFromBytes((*dto.AssignedWaiterID)[:])
		if waiterErr != nil {
			return nil, waiterErr
		}
		waiterID = &wID
	}
	if dto.ActiveOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.ActiveOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return table.RestoreTable(id, dto.Number, dto.Capacity, table.Status(dto.Status), waiterID, orderID)
}
