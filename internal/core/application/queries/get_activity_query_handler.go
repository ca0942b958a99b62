package queries

import (
	"context"

	"tableside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActivityQueryHandler retrieves audit trail entries from the database.
type GetActivityQueryHandler struct {
	db *gorm.DB
}

// NewGetActivityQueryHandler creates a handler for activity log queries.
func NewGetActivityQueryHandler(db *gorm.DB) GetActivityQueryHandler {
	return GetActivityQueryHandler{db: db}
}

// Handle executes the query. Returns the most recent entries first.
func (h GetActivityQueryHandler) Handle(
	ctx context.Context,
	query GetActivityQuery,
) ([]GetActivityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetActivityQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			action_type,
			description,
			created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetActivityQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&entry.ActionType,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
