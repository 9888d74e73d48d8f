package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ordesk/backoffice/internal/domain/product"
)

type productResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SKU         string    `json:"sku"`
	CategoryID  *int64    `json:"categoryId"`
	Kind        string    `json:"kind"`
	Price       int64     `json:"price"`
	Unit        string    `json:"unit"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProductResponse(p product.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		CategoryID:  p.CategoryID,
		Kind:        string(p.Kind),
		Price:       p.Price,
		Unit:        p.Unit,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type productCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	SKU         string `json:"sku" validate:"omitempty,max=50"`
	CategoryID  *int64 `json:"categoryId"`
	Kind        string `json:"kind" validate:"required,oneof=product service"`
	Price       int64  `json:"price" validate:"gte=0"`
	Unit        string `json:"unit" validate:"omitempty,max=20"`
	Active      *bool  `json:"active"`
}

type productUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	SKU         *string `json:"sku" validate:"omitempty,max=50"`
	CategoryID  *int64  `json:"categoryId"`
	Kind        *string `json:"kind" validate:"omitempty,oneof=product service"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	Unit        *string `json:"unit" validate:"omitempty,max=20"`
	Active      *bool   `json:"active"`
}

// ListProducts returns products newest-first, filtered by the search and
// category_id query parameters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	f := product.Filter{Search: r.URL.Query().Get("search")}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		f.CategoryID = &id
	}

	list, err := h.products.List(r.Context(), f)
	if err != nil {
		if degradeRead(r, err) {
			respondJSON(w, http.StatusOK, []productResponse{})
			return
		}
		writeError(w, r, err)
		return
	}

	out := make([]productResponse, len(list))
	for i, p := range list {
		out[i] = toProductResponse(p)
	}
	respondJSON(w, http.StatusOK, out)
}

// GetProduct returns one product by id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if degradeRead(r, err) {
			respondJSON(w, http.StatusOK, nil)
			return
		}
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(*p))
}

// CreateProduct validates and persists a new product, returning its id. The
// unit of measure defaults to "un".
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeValid[productCreateRequest](w, r)
	if !ok {
		return
	}

	unit := req.Unit
	if unit == "" {
		unit = "un"
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	id, err := h.products.Create(r.Context(), &product.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		CategoryID:  req.CategoryID,
		Kind:        product.Kind(req.Kind),
		Price:       req.Price,
		Unit:        unit,
		Active:      active,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdateProduct merges the supplied fields into an existing product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeValid[productUpdateRequest](w, r)
	if !ok {
		return
	}

	err := h.products.Update(r.Context(), id, product.Patch{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		CategoryID:  req.CategoryID,
		Kind:        (*product.Kind)(req.Kind),
		Price:       req.Price,
		Unit:        req.Unit,
		Active:      req.Active,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteProduct hard-deletes a product. Order items keep their snapshot of
// the name and price regardless.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
