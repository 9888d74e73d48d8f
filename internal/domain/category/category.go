// Package category holds the product category entity and its persistence
// contract.
package category

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested category does not exist.
var ErrNotFound = errors.New("category not found")

// ErrInUse is returned when a category delete is rejected because products
// still reference it.
var ErrInUse = errors.New("category is referenced by products")

// Category groups products and services in the catalog.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Patch holds the fields of a partial category update. Nil fields are left
// untouched.
type Patch struct {
	Name        *string
	Description *string
}

// Repository defines persistence operations for categories.
type Repository interface {
	// List returns all categories ordered alphabetically by name.
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, c *Category) (int64, error)
	Update(ctx context.Context, id int64, p Patch) error
	Delete(ctx context.Context, id int64) error
}
