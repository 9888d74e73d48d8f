// Package order implements the order assembly workflow and the order status
// lifecycle. All money values are integer cents.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/ordesk/backoffice/internal/domain/customer"
)

// Sentinel errors for order validation and persistence.
var (
	ErrNotFound         = errors.New("order not found")
	ErrNoItems          = errors.New("order must have at least one item")
	ErrCustomerNotFound = errors.New("order customer does not exist")
	ErrProductNotFound  = errors.New("order item product does not exist")
)

// InvalidQuantityError indicates a line item request with a non-positive
// quantity.
type InvalidQuantityError struct {
	ProductID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be at least 1 for product %d", e.ProductID)
}

// InvalidStatusError indicates a status value outside the enumeration.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("unknown order status %q", e.Status)
}

// PaymentMethod tags how the customer intends to pay. It is informational
// only; settlement is out of scope.
type PaymentMethod string

const (
	PayCash         PaymentMethod = "cash"
	PayCreditCard   PaymentMethod = "credit_card"
	PayDebitCard    PaymentMethod = "debit_card"
	PayPix          PaymentMethod = "pix"
	PayBankTransfer PaymentMethod = "bank_transfer"
	PayCheck        PaymentMethod = "check"
	PayOther        PaymentMethod = "other"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayCreditCard, PayDebitCard, PayPix, PayBankTransfer, PayCheck, PayOther:
		return true
	}
	return false
}

// Order is the persisted order header. TotalAmount is the sum of item totals
// and FinalAmount is TotalAmount minus Discount.
type Order struct {
	ID            int64
	OrderNumber   string
	CustomerID    int64
	UserID        int64
	Status        Status
	PaymentMethod PaymentMethod
	TotalAmount   int64
	Discount      int64
	FinalAmount   int64
	Notes         string
	DeliveryDate  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Item is a persisted order line. ProductName and UnitPrice are snapshots
// taken at order creation and stay fixed when the catalog changes later.
type Item struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   int64
	TotalPrice  int64
	Notes       string
	CreatedAt   time.Time
}

// Details is the joined view returned for a single order: header, lines and
// the owning customer.
type Details struct {
	Order
	Items    []Item
	Customer *customer.Customer
}

// Filter narrows an order listing.
type Filter struct {
	Status     Status
	CustomerID *int64
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create persists the header and all items as one atomic unit and
	// returns the new order id. A partially written order must never be
	// observable.
	Create(ctx context.Context, o *Order, items []Item) (int64, error)
	// List returns matching orders newest-first.
	List(ctx context.Context, f Filter) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetDetails(ctx context.Context, id int64) (*Details, error)
	UpdateStatus(ctx context.Context, id int64, s Status) error
	Delete(ctx context.Context, id int64) error
}
