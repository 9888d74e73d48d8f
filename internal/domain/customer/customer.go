// Package customer holds the customer entity and its persistence contract.
package customer

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested customer does not exist.
var ErrNotFound = errors.New("customer not found")

// ErrInUse is returned when a customer delete is rejected because orders
// still reference it. The orders table defines a no-cascade foreign key, so
// the delete fails instead of silently removing order history.
var ErrInUse = errors.New("customer is referenced by orders")

// Customer is a buyer in the back office. Document holds the tax id
// (CPF/CNPJ).
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Document  string
	Address   string
	City      string
	State     string
	ZipCode   string
	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch holds the fields of a partial customer update. Nil fields are left
// untouched.
type Patch struct {
	Name     *string
	Email    *string
	Phone    *string
	Document *string
	Address  *string
	City     *string
	State    *string
	ZipCode  *string
	Notes    *string
	Active   *bool
}

// Repository defines persistence operations for customers.
type Repository interface {
	// List returns customers newest-first. A non-empty search term matches
	// case-insensitively against name, email, phone and document.
	List(ctx context.Context, search string) ([]Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, c *Customer) (int64, error)
	Update(ctx context.Context, id int64, p Patch) error
	Delete(ctx context.Context, id int64) error
}
