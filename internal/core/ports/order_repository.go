package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are stored with their owned items and addons.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including its
	// item sequence.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves every order that has not reached a terminal
	// status. Used to warm the coordination service's in-memory state at
	// startup.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
