// Package http exposes the coordination service to station clients over a
// JSON API. Handlers translate between wire types and the service's views;
// no business rules live here.
package http

import (
	"net/http"

	"tableside/internal/core/application/coordinator"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests by delegating to the coordination service.
type Server struct {
	coord *coordinator.Coordinator
}

// NewServer creates a new HTTP server over the coordination service.
func NewServer(coord *coordinator.Coordinator) *Server {
	return &Server{coord: coord}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/auth/login", s.Login)

	api.POST("/users/:userId/clock-in", s.ClockIn)
	api.POST("/users/:userId/clock-out", s.ClockOut)
	api.GET("/users/:userId/shift", s.ShiftElapsed)

	api.GET("/tables", s.GetTables)
	api.POST("/tables", s.RegisterTable)
	api.PUT("/tables/:tableId/status", s.SetTableStatus)
	api.GET("/waiters/:waiterId/tables", s.GetWaiterTables)

	api.GET("/menu", s.GetMenu)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOpenOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/items", s.AddOrderItem)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/close", s.CloseOrder)

	api.POST("/items/:itemId/addons", s.AddItemAddon)
	api.PUT("/items/:itemId/status", s.SetItemStatus)
}

func parseID(ctx echo.Context, param string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(param))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	user, err := s.coord.Authenticate(ctx.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, userToResponse(user))
}

// ClockIn handles POST /api/v1/users/:userId/clock-in.
func (s *Server) ClockIn(ctx echo.Context) error {
	userID, err := parseID(ctx, "userId")
	if err != nil {
		return writeError(ctx, err)
	}

	rec, err := s.coord.ClockIn(ctx.Request().Context(), userID)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, timeRecordToResponse(rec))
}

// ClockOut handles POST /api/v1/users/:userId/clock-out.
func (s *Server) ClockOut(ctx echo.Context) error {
	userID, err := parseID(ctx, "userId")
	if err != nil {
		return writeError(ctx, err)
	}

	rec, err := s.coord.ClockOut(ctx.Request().Context(), userID)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, timeRecordToResponse(rec))
}

// ShiftElapsed handles GET /api/v1/users/:userId/shift.
func (s *Server) ShiftElapsed(ctx echo.Context) error {
	userID, err := parseID(ctx, "userId")
	if err != nil {
		return writeError(ctx, err)
	}

	elapsed, err := s.coord.ElapsedOnShift(userID)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, shiftElapsedResponse{
		ElapsedSeconds: int64(elapsed.Seconds()),
	})
}

// GetTables handles GET /api/v1/tables.
func (s *Server) GetTables(ctx echo.Context) error {
	views := s.coord.Tables()
	response := make([]tableResponse, 0, len(views))
	for _, v := range views {
		response = append(response, tableToResponse(v))
	}
	return ctx.JSON(http.StatusOK, response)
}

// RegisterTable handles POST /api/v1/tables.
func (s *Server) RegisterTable(ctx echo.Context) error {
	var req registerTableRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	view, err := s.coord.RegisterTable(ctx.Request().Context(), req.Number, req.Capacity)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, tableToResponse(view))
}

// SetTableStatus handles PUT /api/v1/tables/:tableId/status.
func (s *Server) SetTableStatus(ctx echo.Context) error {
	tableID, err := parseID(ctx, "tableId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req setTableStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	next, err := table.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}
	actingUserID, err := kernel.UUIDFromString(req.ActingUserID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("actingUserId", err))
	}

	view, err := s.coord.SetTableStatus(ctx.Request().Context(), tableID, next, actingUserID)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, tableToResponse(view))
}

// GetWaiterTables handles GET /api/v1/waiters/:waiterId/tables.
func (s *Server) GetWaiterTables(ctx echo.Context) error {
	waiterID, err := parseID(ctx, "waiterId")
	if err != nil {
		return writeError(ctx, err)
	}

	views := s.coord.TablesForWaiter(waiterID)
	response := make([]tableResponse, 0, len(views))
	for _, v := range views {
		response = append(response, tableToResponse(v))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetMenu handles GET /api/v1/menu.
func (s *Server) GetMenu(ctx echo.Context) error {
	items := s.coord.Menu()
	response := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, menuItemToResponse(item))
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	tableID, err := kernel.UUIDFromString(req.TableID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("tableId", err))
	}
	waiterID, err := kernel.UUIDFromString(req.WaiterID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("waiterId", err))
	}

	view, err := s.coord.CreateOrder(ctx.Request().Context(), tableID, waiterID)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, orderToResponse(view))
}

// GetOpenOrders handles GET /api/v1/orders.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	views := s.coord.OpenOrders()
	response := make([]orderResponse, 0, len(views))
	for _, v := range views {
		response = append(response, orderToResponse(v))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	view := s.coord.FindOrderByID(orderID)
	if view == nil {
		return writeError(ctx, errs.NewObjectNotFoundError("orderId", orderID))
	}
	return ctx.JSON(http.StatusOK, orderToResponse(*view))
}

// AddOrderItem handles POST /api/v1/orders/:orderId/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := parseID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req addItemRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	menuItemID, err := kernel.UUIDFromString(req.MenuItemID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("menuItemId", err))
	}

	view, err := s.coord.AddOrderItem(ctx.Request().Context(), orderID, menuItemID,
		req.Quantity, req.SeatNumber, req.Instructions)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, itemToResponse(view))
}

// AddItemAddon handles POST /api/v1/items/:itemId/addons.
func (s *Server) AddItemAddon(ctx echo.Context) error {
	itemID, err := parseID(ctx, "itemId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req addAddonRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	addonID, err := kernel.UUIDFromString(req.AddonID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("addonId", err))
	}

	view, err := s.coord.AddItemAddon(ctx.Request().Context(), itemID, addonID)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, itemToResponse(view))
}

// SetItemStatus handles PUT /api/v1/items/:itemId/status.
func (s *Server) SetItemStatus(ctx echo.Context) error {
	itemID, err := parseID(ctx, "itemId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req setItemStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	next, err := order.ItemStatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.coord.AdvanceOrderItemStatus(ctx.Request().Context(), itemID, next)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderToResponse(view))
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.coord.CancelOrder(ctx.Request().Context(), orderID)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderToResponse(view))
}

// CloseOrder handles POST /api/v1/orders/:orderId/close.
func (s *Server) CloseOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req closeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	tip, err := kernel.NewMoneyFromCents(req.TipCents)
	if err != nil {
		return writeError(ctx, err)
	}

	receipt, err := s.coord.CloseOrder(ctx.Request().Context(), orderID, req.PaymentMethod, tip)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, receiptToResponse(receipt))
}
