package http

import (
	"net/http"
	"strconv"
	"time"

	"tableside/internal/core/application/queries"
	"tableside/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultHistoryLimit = 50

// RegisterHistoryRoutes mounts the read-only history endpoints. These are
// served straight from the database rather than live coordination state, so
// they take their own query handlers.
func (s *Server) RegisterHistoryRoutes(
	e *echo.Echo,
	settledOrders queries.GetSettledOrdersQueryHandler,
	activity queries.GetActivityQueryHandler,
) {
	api := e.Group("/api/v1")

	api.GET("/orders/history", func(ctx echo.Context) error {
		limit, err := parseLimit(ctx)
		if err != nil {
			return writeError(ctx, err)
		}
		query, err := queries.NewGetSettledOrdersQuery(limit)
		if err != nil {
			return writeError(ctx, err)
		}

		settled, err := settledOrders.Handle(ctx.Request().Context(), query)
		if err != nil {
			return writeError(ctx, err)
		}

		response := make([]settledOrderResponse, 0, len(settled))
		for _, o := range settled {
			response = append(response, settledOrderToResponse(o))
		}
		return ctx.JSON(http.StatusOK, response)
	})

	api.GET("/activity", func(ctx echo.Context) error {
		limit, err := parseLimit(ctx)
		if err != nil {
			return writeError(ctx, err)
		}
		query, err := queries.NewGetActivityQuery(limit)
		if err != nil {
			return writeError(ctx, err)
		}

		entries, err := activity.Handle(ctx.Request().Context(), query)
		if err != nil {
			return writeError(ctx, err)
		}

		response := make([]activityEntryResponse, 0, len(entries))
		for _, entry := range entries {
			response = append(response, activityEntryResponse{
				ID:          entry.ID.String(),
				ActionType:  entry.ActionType,
				Description: entry.Description,
				CreatedAt:   entry.CreatedAt,
			})
		}
		return ctx.JSON(http.StatusOK, response)
	})
}

func parseLimit(ctx echo.Context) (int, error) {
	raw := ctx.QueryParam("limit")
	if raw == "" {
		return defaultHistoryLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("limit", err)
	}
	return limit, nil
}

type settledOrderResponse struct {
	ID            string     `json:"id"`
	TableNumber   int        `json:"tableNumber"`
	WaiterID      string     `json:"waiterId"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	TipCents      int64      `json:"tipCents"`
	TaxCents      int64      `json:"taxCents"`
	TotalCents    int64      `json:"totalCents"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

type activityEntryResponse struct {
	ID          string    `json:"id"`
	ActionType  string    `json:"actionType"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func settledOrderToResponse(o queries.GetSettledOrdersQueryResponse) settledOrderResponse {
	return settledOrderResponse{
		ID:            o.ID.String(),
		TableNumber:   o.TableNumber,
		WaiterID:      o.WaiterID.String(),
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		TipCents:      o.TipAmount,
		TaxCents:      o.TaxAmount,
		TotalCents:    o.TotalAmount,
		PaidAt:        o.PaidAt,
	}
}
