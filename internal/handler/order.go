package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ordesk/backoffice/internal/domain/order"
)

type orderResponse struct {
	ID            int64      `json:"id"`
	OrderNumber   string     `json:"orderNumber"`
	CustomerID    int64      `json:"customerId"`
	UserID        int64      `json:"userId"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	TotalAmount   int64      `json:"totalAmount"`
	Discount      int64      `json:"discount"`
	FinalAmount   int64      `json:"finalAmount"`
	Notes         string     `json:"notes"`
	DeliveryDate  *time.Time `json:"deliveryDate"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type orderItemResponse struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"orderId"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	TotalPrice  int64  `json:"totalPrice"`
	Notes       string `json:"notes"`
}

type orderDetailsResponse struct {
	orderResponse
	Items    []orderItemResponse `json:"items"`
	Customer *customerResponse   `json:"customer"`
}

func toOrderResponse(o order.Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		TotalAmount:   o.TotalAmount,
		Discount:      o.Discount,
		FinalAmount:   o.FinalAmount,
		Notes:         o.Notes,
		DeliveryDate:  o.DeliveryDate,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

type orderItemRequest struct {
	ProductID   int64  `json:"productId" validate:"required"`
	ProductName string `json:"productName" validate:"required"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice" validate:"gte=0"`
	Notes       string `json:"notes"`
}

type orderCreateRequest struct {
	CustomerID    int64              `json:"customerId" validate:"required"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=cash credit_card debit_card pix bank_transfer check other"`
	Items         []orderItemRequest `json:"items" validate:"dive"`
	Discount      int64              `json:"discount" validate:"gte=0"`
	Notes         string             `json:"notes"`
	DeliveryDate  *time.Time         `json:"deliveryDate"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListOrders returns orders newest-first, filtered by the status and
// customer_id query parameters.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var f order.Filter
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := order.Status(raw)
		if !s.Valid() {
			respondError(w, http.StatusBadRequest, "invalid status")
			return
		}
		f.Status = s
	}
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid customer_id")
			return
		}
		f.CustomerID = &id
	}

	list, err := h.orders.List(r.Context(), f)
	if err != nil {
		if degradeRead(r, err) {
			respondJSON(w, http.StatusOK, []orderResponse{})
			return
		}
		writeError(w, r, err)
		return
	}

	out := make([]orderResponse, len(list))
	for i, o := range list {
		out[i] = toOrderResponse(o)
	}
	respondJSON(w, http.StatusOK, out)
}

// GetOrder returns one order joined with its line items and customer.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	d, err := h.orders.GetDetails(r.Context(), id)
	if err != nil {
		if degradeRead(r, err) {
			respondJSON(w, http.StatusOK, nil)
			return
		}
		writeError(w, r, err)
		return
	}

	resp := orderDetailsResponse{
		orderResponse: toOrderResponse(d.Order),
		Items:         make([]orderItemResponse, len(d.Items)),
	}
	for i, it := range d.Items {
		resp.Items[i] = orderItemResponse{
			ID:          it.ID,
			OrderID:     it.OrderID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Notes:       it.Notes,
		}
	}
	if d.Customer != nil {
		c := toCustomerResponse(*d.Customer)
		resp.Customer = &c
	}
	respondJSON(w, http.StatusOK, resp)
}

// CreateOrder assembles and persists a new order. The acting user comes from
// the X-User-ID header, set by the authenticating front end and trusted here.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
	if err != nil || userID < 1 {
		respondError(w, http.StatusBadRequest, "missing or invalid X-User-ID header")
		return
	}

	req, ok := decodeValid[orderCreateRequest](w, r)
	if !ok {
		return
	}

	items := make([]order.ItemRequest, len(req.Items))
	for i, it := range req.Items {
		items[i] = order.ItemRequest{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Notes:       it.Notes,
		}
	}

	result, err := h.orderSvc.Create(r.Context(), order.CreateRequest{
		CustomerID:    req.CustomerID,
		UserID:        userID,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
		Items:         items,
		Discount:      req.Discount,
		Notes:         req.Notes,
		DeliveryDate:  req.DeliveryDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":          result.ID,
		"orderNumber": result.OrderNumber,
	})
}

// UpdateOrderStatus overwrites the status of an existing order.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeValid[orderStatusRequest](w, r)
	if !ok {
		return
	}

	if err := h.orderSvc.UpdateStatus(r.Context(), id, order.Status(req.Status)); err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteOrder removes an order together with its items.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
