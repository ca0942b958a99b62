package queries

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

var (
	ErrGetSettledOrdersQueryIsNotConstructed = errors.New(
		"GetSettledOrdersQuery must be created via NewGetSettledOrdersQuery constructor",
	)
)

// GetSettledOrdersQuery retrieves closed tickets, newest first. Settled
// orders are evicted from live coordination state, so history reads come
// straight from the database.
type GetSettledOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetSettledOrdersQuery creates a query for order history. Limit caps the
// number of rows returned and must be positive.
func NewGetSettledOrdersQuery(limit int) (GetSettledOrdersQuery, error) {
	if limit <= 0 {
		return GetSettledOrdersQuery{}, errs.NewValueIsInvalidError("limit")
	}
	return GetSettledOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Limit returns the maximum number of rows to fetch.
func (q GetSettledOrdersQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetSettledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSettledOrdersQueryIsNotConstructed)
}

// GetSettledOrdersQueryResponse is the read model for one settled ticket.
type GetSettledOrdersQueryResponse struct {
	ID            kernel.UUID
	TableNumber   int
	WaiterID      kernel.UUID
	Status        string
	PaymentMethod string
	TipAmount     int64
	TaxAmount     int64
	TotalAmount   int64
	PaidAt        *time.Time
}
