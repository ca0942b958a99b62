package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/staff"
)

// UserRepository defines the persistence contract for staff users.
// Users are long-lived reference data; the core reads them at startup and
// after management edits.
type UserRepository interface {
	// Add persists a new user.
	Add(ctx context.Context, user *staff.User) error

	// Get retrieves a user by id.
	Get(ctx context.Context, id kernel.UUID) (*staff.User, error)

	// GetByUsername retrieves a user by login name.
	GetByUsername(ctx context.Context, username string) (*staff.User, error)

	// GetAll retrieves every user.
	GetAll(ctx context.Context) ([]*staff.User, error)
}

// TimeRecordRepository defines the persistence contract for time-clock records.
type TimeRecordRepository interface {
	// Add persists a new (open) time record.
	Add(ctx context.Context, record *staff.TimeRecord) error

	// Update persists changes to an existing time record, normally the
	// clock-out stamp.
	Update(ctx context.Context, record *staff.TimeRecord) error

	// GetAllOpen retrieves every record without a clock-out stamp.
	// Used to warm the coordination service's in-memory state at startup.
	GetAllOpen(ctx context.Context) ([]*staff.TimeRecord, error)
}
