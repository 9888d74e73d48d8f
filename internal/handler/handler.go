// Package handler exposes the back office over HTTP/JSON.
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ordesk/backoffice/internal/domain/category"
	"github.com/ordesk/backoffice/internal/domain/customer"
	"github.com/ordesk/backoffice/internal/domain/dashboard"
	"github.com/ordesk/backoffice/internal/domain/order"
	"github.com/ordesk/backoffice/internal/domain/product"
)

// Handler routes API requests to the domain repositories and the order
// service.
type Handler struct {
	categories category.Repository
	customers  customer.Repository
	products   product.Repository
	orders     order.Repository
	orderSvc   *order.Service
	stats      dashboard.Repository
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	categories category.Repository,
	customers customer.Repository,
	products product.Repository,
	orders order.Repository,
	orderSvc *order.Service,
	stats dashboard.Repository,
) *Handler {
	return &Handler{
		categories: categories,
		customers:  customers,
		products:   products,
		orders:     orders,
		orderSvc:   orderSvc,
		stats:      stats,
	}
}

// Routes returns the API router. The caller mounts it under /api.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{id}", h.GetCategory)
		r.Patch("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.ListCustomers)
		r.Post("/", h.CreateCustomer)
		r.Get("/{id}", h.GetCustomer)
		r.Patch("/{id}", h.UpdateCustomer)
		r.Delete("/{id}", h.DeleteCustomer)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Patch("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
		r.Patch("/{id}/status", h.UpdateOrderStatus)
		r.Delete("/{id}", h.DeleteOrder)
	})

	r.Get("/dashboard/stats", h.DashboardStats)

	return r
}

// pathID parses the {id} route parameter, writing a 400 response when it is
// not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
