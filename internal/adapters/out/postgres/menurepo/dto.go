// Package menurepo provides data transfer objects and mapping functions for
// menu reference data.
package menurepo

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// MenuItemDTO represents the database structure for persisting menu items.
type MenuItemDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string
	Category  string         `gorm:"index"`
	Price     int64
	Available bool
	Addons    []MenuAddonDTO `gorm:"foreignKey:MenuItemID;references:ID"`
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// MenuAddonDTO represents an addon offered for a menu item.
type MenuAddonDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemID uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	Price      int64
}

// TableName specifies the database table name for menu item addons.
func (MenuAddonDTO) TableName() string {
	return "menu_item_addons"
}

func fromDomain(item *menu.MenuItem) MenuItemDTO {
	addons := item.Addons()
	dto := MenuItemDTO{
		ID:        item.ID().Bytes(),
		Name:      item.Name(),
		Category:  item.Category(),
		Price:     item.Price().Cents(),
		Available: item.IsAvailable(),
		Addons:    make([]MenuAddonDTO, 0, len(addons)),
	}
	for _, addon := range addons {
		dto.Addons = append(dto.Addons, MenuAddonDTO{
			ID:         addon.ID().Bytes(),
			MenuItemID: item.ID().Bytes(),
			Name:       addon.Name(),
			Price:      addon.Price().Cents(),
		})
	}
	return dto
}

func toDomain(dto MenuItemDTO) (*menu.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoneyFromCents(dto.Price)
	if err != nil {
		return nil, err
	}

	item, err := menu.NewMenuItem(id, dto.Name, dto.Category, price, dto.Available)
	if err != nil {
		return nil, err
	}

	for _, addonDTO := range dto.Addons {
		addonID, addonErr := kernel.UUIDFromBytes(addonDTO.ID[:])
		if addonErr != nil {
			return nil, addonErr
		}
		addonPrice, addonErr := kernel.NewMoneyFromCents(addonDTO.Price)
		if addonErr != nil {
			return nil, addonErr
		}
		addon, addonErr := menu.NewAddon(addonID, addonDTO.Name, addonPrice)
		if addonErr != nil {
			return nil, addonErr
		}
		if addonErr = item.AttachAddon(addon); addonErr != nil {
			return nil, addonErr
		}
	}

	return item, nil
}
