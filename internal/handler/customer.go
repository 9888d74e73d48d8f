package handler

import (
	"net/http"
	"time"

	"github.com/ordesk/backoffice/internal/domain/customer"
)

type customerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Document  string    `json:"document"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zipCode"`
	Notes     string    `json:"notes"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCustomerResponse(c customer.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Notes:     c.Notes,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type customerCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Document string `json:"document" validate:"omitempty,max=20"`
	Address  string `json:"address"`
	City     string `json:"city" validate:"omitempty,max=100"`
	State    string `json:"state" validate:"omitempty,len=2"`
	ZipCode  string `json:"zipCode" validate:"omitempty,max=10"`
	Notes    string `json:"notes"`
	Active   *bool  `json:"active"`
}

type customerUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Document *string `json:"document" validate:"omitempty,max=20"`
	Address  *string `json:"address"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	State    *string `json:"state" validate:"omitempty,len=2"`
	ZipCode  *string `json:"zipCode" validate:"omitempty,max=10"`
	Notes    *string `json:"notes"`
	Active   *bool   `json:"active"`
}

// ListCustomers returns customers newest-first, optionally filtered by the
// search query parameter.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := h.customers.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		if degradeRead(r, err) {
			respondJSON(w, http.StatusOK, []customerResponse{})
			return
		}
		writeError(w, r, err)
		return
	}

	out := make([]customerResponse, len(list))
	for i, c := range list {
		out[i] = toCustomerResponse(c)
	}
	respondJSON(w, http.StatusOK, out)
}

// GetCustomer returns one customer by id.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		if degradeRead(r, err) {
			respondJSON(w, http.StatusOK, nil)
			return
		}
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCustomerResponse(*c))
}

// CreateCustomer validates and persists a new customer, returning its id.
// Customers are active unless the request says otherwise.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeValid[customerCreateRequest](w, r)
	if !ok {
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	id, err := h.customers.Create(r.Context(), &customer.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Notes:    req.Notes,
		Active:   active,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdateCustomer merges the supplied fields into an existing customer.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeValid[customerUpdateRequest](w, r)
	if !ok {
		return
	}

	err := h.customers.Update(r.Context(), id, customer.Patch{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Notes:    req.Notes,
		Active:   req.Active,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteCustomer hard-deletes a customer. A customer still referenced by
// orders is rejected with 409.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
