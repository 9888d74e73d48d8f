package handler

import (
	"net/http"
	"time"

	"github.com/ordesk/backoffice/internal/domain/category"
)

type categoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCategoryResponse(c category.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type categoryCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

type categoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// ListCategories returns every category, alphabetical by name.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		if degradeRead(r, err) {
			respondJSON(w, http.StatusOK, []categoryResponse{})
			return
		}
		writeError(w, r, err)
		return
	}

	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		out[i] = toCategoryResponse(c)
	}
	respondJSON(w, http.StatusOK, out)
}

// GetCategory returns one category by id.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		if degradeRead(r, err) {
			respondJSON(w, http.StatusOK, nil)
			return
		}
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCategoryResponse(*c))
}

// CreateCategory validates and persists a new category, returning its id.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeValid[categoryCreateRequest](w, r)
	if !ok {
		return
	}

	id, err := h.categories.Create(r.Context(), &category.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdateCategory merges the supplied fields into an existing category.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeValid[categoryUpdateRequest](w, r)
	if !ok {
		return
	}

	err := h.categories.Update(r.Context(), id, category.Patch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteCategory hard-deletes a category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
