package http

import (
	"time"

	"tableside/internal/core/application/coordinator"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/staff"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerTableRequest struct {
	Number   int `json:"number"`
	Capacity int `json:"capacity"`
}

type setTableStatusRequest struct {
	Status       string `json:"status"`
	ActingUserID string `json:"actingUserId"`
}

type createOrderRequest struct {
	TableID  string `json:"tableId"`
	WaiterID string `json:"waiterId"`
}

type addItemRequest struct {
	MenuItemID   string `json:"menuItemId"`
	Quantity     int    `json:"quantity"`
	SeatNumber   int    `json:"seatNumber"`
	Instructions string `json:"instructions"`
}

type addAddonRequest struct {
	AddonID string `json:"addonId"`
}

type setItemStatusRequest struct {
	Status string `json:"status"`
}

type closeOrderRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	TipCents      int64  `json:"tipCents"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type tableResponse struct {
	ID               string  `json:"id"`
	Number           int     `json:"number"`
	Capacity         int     `json:"capacity"`
	Status           string  `json:"status"`
	AssignedWaiterID *string `json:"assignedWaiterId,omitempty"`
	ActiveOrderID    *string `json:"activeOrderId,omitempty"`
}

type orderResponse struct {
	ID            string         `json:"id"`
	TableID       string         `json:"tableId"`
	WaiterID      string         `json:"waiterId"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	Items         []itemResponse `json:"items"`
	SubtotalCents int64          `json:"subtotalCents"`
}

type itemResponse struct {
	ID             string          `json:"id"`
	MenuItemID     string          `json:"menuItemId"`
	Quantity       int             `json:"quantity"`
	SeatNumber     int             `json:"seatNumber"`
	PriceCents     int64           `json:"priceCents"`
	Instructions   string          `json:"instructions,omitempty"`
	Status         string          `json:"status"`
	PrepStart      *time.Time      `json:"prepStart,omitempty"`
	CompletionTime *time.Time      `json:"completionTime,omitempty"`
	Addons         []addonResponse `json:"addons"`
	LineTotalCents int64           `json:"lineTotalCents"`
}

type addonResponse struct {
	ID         string `json:"id"`
	AddonID    string `json:"addonId"`
	PriceCents int64  `json:"priceCents"`
}

type receiptResponse struct {
	SubtotalCents  int64 `json:"subtotalCents"`
	TaxCents       int64 `json:"taxCents"`
	TipCents       int64 `json:"tipCents"`
	TotalCents     int64 `json:"totalCents"`
	AmountDueCents int64 `json:"amountDueCents"`
}

type timeRecordResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut,omitempty"`
	TotalHours float64    `json:"totalHours,omitempty"`
}

type shiftElapsedResponse struct {
	ElapsedSeconds int64 `json:"elapsedSeconds"`
}

type menuItemResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Category   string              `json:"category"`
	PriceCents int64               `json:"priceCents"`
	Available  bool                `json:"available"`
	Addons     []menuAddonResponse `json:"addons"`
}

type menuAddonResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}

func userToResponse(u *staff.User) userResponse {
	return userResponse{
		ID:       u.ID().String(),
		Username: u.Username(),
		FullName: u.FullName(),
		Role:     u.Role().String(),
	}
}

func tableToResponse(v coordinator.TableView) tableResponse {
	resp := tableResponse{
		ID:       v.ID.String(),
		Number:   v.Number,
		Capacity: v.Capacity,
		Status:   v.Status.String(),
	}
	if v.AssignedWaiter != nil {
		s := v.AssignedWaiter.String()
		resp.AssignedWaiterID = &s
	}
	if v.ActiveOrder != nil {
		s := v.ActiveOrder.String()
		resp.ActiveOrderID = &s
	}
	return resp
}

func orderToResponse(v coordinator.OrderView) orderResponse {
	resp := orderResponse{
		ID:            v.ID.String(),
		TableID:       v.TableID.String(),
		WaiterID:      v.WaiterID.String(),
		Status:        v.Status.String(),
		CreatedAt:     v.CreatedAt,
		Items:         make([]itemResponse, 0, len(v.Items)),
		SubtotalCents: v.Subtotal.Cents(),
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, itemToResponse(item))
	}
	return resp
}

func itemToResponse(v coordinator.ItemView) itemResponse {
	resp := itemResponse{
		ID:             v.ID.String(),
		MenuItemID:     v.MenuItemID.String(),
		Quantity:       v.Quantity,
		SeatNumber:     v.SeatNumber,
		PriceCents:     v.Price.Cents(),
		Instructions:   v.Instructions,
		Status:         v.Status.String(),
		PrepStart:      v.PrepStart,
		CompletionTime: v.CompletionTime,
		Addons:         make([]addonResponse, 0, len(v.Addons)),
		LineTotalCents: v.LineTotal.Cents(),
	}
	for _, addon := range v.Addons {
		resp.Addons = append(resp.Addons, addonResponse{
			ID:         addon.ID.String(),
			AddonID:    addon.AddonID.String(),
			PriceCents: addon.Price.Cents(),
		})
	}
	return resp
}

func receiptToResponse(r order.Receipt) receiptResponse {
	return receiptResponse{
		SubtotalCents:  r.Subtotal.Cents(),
		TaxCents:       r.Tax.Cents(),
		TipCents:       r.Tip.Cents(),
		TotalCents:     r.Total.Cents(),
		AmountDueCents: r.AmountDue.Cents(),
	}
}

func timeRecordToResponse(v coordinator.TimeRecordView) timeRecordResponse {
	return timeRecordResponse{
		ID:         v.ID.String(),
		UserID:     v.UserID.String(),
		ClockIn:    v.ClockIn,
		ClockOut:   v.ClockOut,
		TotalHours: v.TotalHours,
	}
}

func menuItemToResponse(m *menu.MenuItem) menuItemResponse {
	addons := m.Addons()
	resp := menuItemResponse{
		ID:         m.ID().String(),
		Name:       m.Name(),
		Category:   m.Category(),
		PriceCents: m.Price().Cents(),
		Available:  m.IsAvailable(),
		Addons:     make([]menuAddonResponse, 0, len(addons)),
	}
	for _, addon := range addons {
		resp.Addons = append(resp.Addons, menuAddonResponse{
			ID:         addon.ID().String(),
			Name:       addon.Name(),
			PriceCents: addon.Price().Cents(),
		})
	}
	return resp
}
