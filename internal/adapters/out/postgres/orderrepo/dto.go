// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. An order is stored with its owned items and their
// addons; loading an order always loads the full aggregate.
package orderrepo

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TableID       uuid.UUID      `gorm:"type:uuid;index"`
	WaiterID      uuid.UUID      `gorm:"type:uuid;index"`
	Status        int            `gorm:"index"`
	CreatedAt     time.Time
	PaymentMethod string
	TipAmount     int64
	TaxAmount     int64
	TotalAmount   int64
	PaidAt        *time.Time
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents a single line item within an order. Position is
// the item's index within the ticket; items are always loaded ordered by it
// so a rehydrated order keeps its entry order.
type OrderItemDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID      `gorm:"type:uuid;index"`
	Position       int
	MenuItemID     uuid.UUID      `gorm:"type:uuid"`
	Quantity       int
	SeatNumber     int
	Price          int64
	Instructions   string
	Status         int            `gorm:"index"`
	PrepStart      *time.Time
	CompletionTime *time.Time
	Addons         []ItemAddonDTO `gorm:"foreignKey:OrderItemID;references:ID"`
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// ItemAddonDTO represents an addon applied to an order item, with the price
// snapshot taken when it was added.
type ItemAddonDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderItemID uuid.UUID `gorm:"type:uuid;index"`
	AddonID     uuid.UUID `gorm:"type:uuid"`
	Price       int64
}

// TableName specifies the database table name for order item addons.
func (ItemAddonDTO) TableName() string {
	return "order_item_addons"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		TableID:       aggregate.TableID().Bytes(),
		WaiterID:      aggregate.WaiterID().Bytes(),
		Status:        int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
		PaymentMethod: aggregate.PaymentMethod(),
		TipAmount:     aggregate.TipAmount().Cents(),
		TaxAmount:     aggregate.TaxAmount().Cents(),
		TotalAmount:   aggregate.TotalAmount().Cents(),
		PaidAt:        aggregate.PaidAt(),
		Items:         make([]OrderItemDTO, 0, len(items)),
	}
	for i, item := range items {
		dto.Items = append(dto.Items, itemFromDomain(item, i))
	}
	return dto
}

func itemFromDomain(item *order.Item, position int) OrderItemDTO {
	addons := item.Addons()
	dto := OrderItemDTO{
		ID:             item.ID().Bytes(),
		OrderID:        item.OrderID().Bytes(),
		Position:       position,
		MenuItemID:     item.MenuItemID().Bytes(),
		Quantity:       item.Quantity(),
		SeatNumber:     item.SeatNumber(),
		Price:          item.Price().Cents(),
		Instructions:   item.Instructions(),
		Status:         int(item.Status()),
		PrepStart:      item.PrepStart(),
		CompletionTime: item.CompletionTime(),
		Addons:         make([]ItemAddonDTO, 0, len(addons)),
	}
	for _, addon := range addons {
		dto.Addons = append(dto.Addons, ItemAddonDTO{
			ID:          addon.ID().Bytes(),
			OrderItemID: addon.OrderItemID().Bytes(),
			AddonID:     addon.AddonID().Bytes(),
			Price:       addon.Price().Cents(),
		})
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tableID, err := kernel.UUIDFromBytes(dto.TableID[:])
	if err != nil {
		return nil, err
	}
	waiterID, err := kernel.UUIDFromBytes(dto.WaiterID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	tip, err := kernel.NewMoneyFromCents(dto.TipAmount)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoneyFromCents(dto.TaxAmount)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoneyFromCents(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, tableID, waiterID, dto.CreatedAt,
		order.Status(dto.Status), items, dto.PaymentMethod, tip, tax, total, dto.PaidAt)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoneyFromCents(dto.Price)
	if err != nil {
		return nil, err
	}

	addons := make([]*order.ItemAddon, 0, len(dto.Addons))
	for _, addonDTO := range dto.Addons {
		addon, addonErr := addonToDomain(addonDTO)
		if addonErr != nil {
			return nil, addonErr
		}
		addons = append(addons, addon)
	}

	return order.RestoreItem(id, orderID, menuItemID, dto.Quantity, dto.SeatNumber,
		price, dto.Instructions, order.ItemStatus(dto.Status), dto.PrepStart, dto.CompletionTime, addons)
}

func addonToDomain(dto ItemAddonDTO) (*order.ItemAddon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}
	addonID, err := kernel.UUIDFromBytes(dto.AddonID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoneyFromCents(dto.Price)
	if err != nil {
		return nil, err
	}

	return order.NewItemAddon(id, orderItemID, addonID, price)
}
