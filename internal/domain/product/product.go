// Package product holds the catalog entity for sellable products and
// services.
package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// ErrInUse is returned when a product delete is rejected because order items
// still reference it.
var ErrInUse = errors.New("product is referenced by order items")

// Kind distinguishes physical products from services.
type Kind string

const (
	KindProduct Kind = "product"
	KindService Kind = "service"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindProduct || k == KindService
}

// Product is a sellable catalog item. Price is in integer cents; Unit is the
// human label for the unit of measure ("un", "kg", "h", ...).
type Product struct {
	ID          int64
	Name        string
	Description string
	SKU         string
	CategoryID  *int64
	Kind        Kind
	Price       int64
	Unit        string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Patch holds the fields of a partial product update. Nil fields are left
// untouched.
type Patch struct {
	Name        *string
	Description *string
	SKU         *string
	CategoryID  *int64
	Kind        *Kind
	Price       *int64
	Unit        *string
	Active      *bool
}

// Filter narrows a product listing. Search matches case-insensitively against
// name, description and SKU; CategoryID additionally restricts to one
// category.
type Filter struct {
	Search     string
	CategoryID *int64
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	// List returns matching products newest-first.
	List(ctx context.Context, f Filter) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) (int64, error)
	Update(ctx context.Context, id int64, p Patch) error
	Delete(ctx context.Context, id int64) error
}
