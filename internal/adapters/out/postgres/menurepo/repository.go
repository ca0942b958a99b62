package menurepo

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMenuItemRepository implements MenuItemRepository using GORM. The menu
// is reference data maintained by management tooling, so the repository only
// needs Add and reads.
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GORM menu item repository.
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// Add saves a new menu item with its addons to the database.
func (r *GormMenuItemRepository) Add(ctx context.Context, item *menu.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a menu item by ID with its addons.
func (r *GormMenuItemRepository) Get(ctx context.Context, id kernel.UUID) (*menu.MenuItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MenuItemDTO
	err := r.db.WithContext(ctx).
		Preload("Addons").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menuItem", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves the whole menu ordered by category and name.
func (r *GormMenuItemRepository) GetAll(ctx context.Context) ([]*menu.MenuItem, error) {
	var dtos []MenuItemDTO
	err := r.db.WithContext(ctx).
		Preload("Addons").
		Order("category, name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make([]*menu.MenuItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
