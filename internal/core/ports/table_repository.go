package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
)

// TableRepository defines the persistence contract for restaurant tables.
type TableRepository interface {
	// Add persists a new table.
	Add(ctx context.Context, aggregate *table.Table) error

	// Update persists changes to an existing table.
	Update(ctx context.Context, aggregate *table.Table) error

	// Get retrieves a table by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*table.Table, error)

	// GetAll retrieves every table, ordered by table number.
	// Used to warm the coordination service's in-memory state at startup.
	GetAll(ctx context.Context) ([]*table.Table, error)
}
