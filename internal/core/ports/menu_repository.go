package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
)

// MenuItemRepository defines the persistence contract for menu reference data.
type MenuItemRepository interface {
	// Add persists a new menu item with its addons.
	Add(ctx context.Context, item *menu.MenuItem) error

	// Get retrieves a menu item by id.
	Get(ctx context.Context, id kernel.UUID) (*menu.MenuItem, error)

	// GetAll retrieves the whole menu.
	GetAll(ctx context.Context) ([]*menu.MenuItem, error)
}
