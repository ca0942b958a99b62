package queries

import (
	"context"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSettledOrdersQueryHandler retrieves closed tickets from the database.
// Uses direct SQL for read performance, bypassing aggregate reconstruction.
//
// Example:
//
//	handler := NewGetSettledOrdersQueryHandler(db)
//	query, _ := NewGetSettledOrdersQuery(50)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order history: %v", err)
//	    return err
//	}
type GetSettledOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSettledOrdersQueryHandler creates a handler for order history queries.
func NewGetSettledOrdersQueryHandler(db *gorm.DB) GetSettledOrdersQueryHandler {
	return GetSettledOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns paid and cancelled tickets joined with
// their table number, most recently created first.
func (h GetSettledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSettledOrdersQuery,
) ([]GetSettledOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	settled := make([]GetSettledOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			t.number,
			o.waiter_id,
			o.status,
			o.payment_method,
			o.tip_amount,
			o.tax_amount,
			o.total_amount,
			o.paid_at
		FROM orders o
		JOIN restaurant_tables t ON t.id = o.table_id
		WHERE o.status IN ?
		ORDER BY o.created_at DESC
		LIMIT ?
	`, []int{int(order.Paid), int(order.Cancelled)}, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetSettledOrdersQueryResponse
		var id, waiterID uuid.UUID
		var status int
		var paidAt *time.Time

		err = rows.Scan(
			&id,
			&resp.TableNumber,
			&waiterID,
			&status,
			&resp.PaymentMethod,
			&resp.TipAmount,
			&resp.TaxAmount,
			&resp.TotalAmount,
			&paidAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		wID, idErr := kernel.UUIDFromBytes(waiterID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.WaiterID = wID

		resp.Status = order.Status(status).String()
		resp.PaidAt = paidAt
		settled = append(settled, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return settled, nil
}
