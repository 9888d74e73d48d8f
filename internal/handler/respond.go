package handler

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ordesk/backoffice/internal/domain/category"
	"github.com/ordesk/backoffice/internal/domain/customer"
	"github.com/ordesk/backoffice/internal/domain/order"
	"github.com/ordesk/backoffice/internal/domain/product"
	"github.com/ordesk/backoffice/internal/storage"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// decodeValid decodes the JSON body into T and runs struct validation,
// writing a 400 response on failure.
func decodeValid[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if err := validate.Struct(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make(map[string]string, len(ve))
			for _, fe := range ve {
				fields[fe.Field()] = "failed validation on " + fe.Tag()
			}
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: fields})
			return nil, false
		}
		respondError(w, http.StatusBadRequest, "validation failed")
		return nil, false
	}
	return &req, true
}

// writeError maps domain and storage errors onto HTTP statuses:
// validation 400, missing entity 404, integrity conflicts on delete 409,
// unresolvable references on create 422, unreachable storage 503.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		iqErr *order.InvalidQuantityError
		isErr *order.InvalidStatusError
	)

	switch {
	case errors.Is(err, order.ErrNoItems),
		errors.As(err, &iqErr),
		errors.As(err, &isErr):
		respondError(w, http.StatusBadRequest, rootMessage(err))

	case errors.Is(err, category.ErrNotFound),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		respondError(w, http.StatusNotFound, rootMessage(err))

	case errors.Is(err, category.ErrInUse),
		errors.Is(err, customer.ErrInUse),
		errors.Is(err, product.ErrInUse):
		respondError(w, http.StatusConflict, rootMessage(err))

	case errors.Is(err, order.ErrCustomerNotFound),
		errors.Is(err, order.ErrProductNotFound):
		respondError(w, http.StatusUnprocessableEntity, rootMessage(err))

	case errors.Is(err, storage.ErrUnavailable):
		zctx.From(r.Context()).Error("storage unavailable", zap.Error(err))
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")

	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// rootMessage returns the message of the innermost error so wrapped context
// does not leak into client responses.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// degradeRead reports whether a failed read should degrade. Reads against
// unreachable storage answer with empty data (lists and stats) or null
// (single lookups) instead of an error; everything else propagates.
func degradeRead(r *http.Request, err error) bool {
	if errors.Is(err, storage.ErrUnavailable) {
		zctx.From(r.Context()).Warn("read degraded", zap.Error(err))
		return true
	}
	return false
}
