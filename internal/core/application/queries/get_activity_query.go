package queries

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

var (
	ErrGetActivityQueryIsNotConstructed = errors.New(
		"GetActivityQuery must be created via NewGetActivityQuery constructor",
	)
)

// GetActivityQuery retrieves recent audit trail entries, newest first.
type GetActivityQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetActivityQuery creates a query for the activity log. Limit caps the
// number of rows returned and must be positive.
func NewGetActivityQuery(limit int) (GetActivityQuery, error) {
	if limit <= 0 {
		return GetActivityQuery{}, errs.NewValueIsInvalidError("limit")
	}
	return GetActivityQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Limit returns the maximum number of rows to fetch.
func (q GetActivityQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetActivityQuery) Validate() error {
	return q.guard.Validate(ErrGetActivityQueryIsNotConstructed)
}

// GetActivityQueryResponse is the read model for one audit trail entry.
type GetActivityQueryResponse struct {
	ID          kernel.UUID
	ActionType  string
	Description string
	CreatedAt   time.Time
}
