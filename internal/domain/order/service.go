package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// CreateRequest holds the input for assembling a new order. Item name and
// unit price are snapshots supplied by the caller, not re-read from the live
// catalog row.
type CreateRequest struct {
	CustomerID    int64
	UserID        int64
	PaymentMethod PaymentMethod
	Items         []ItemRequest
	Discount      int64
	Notes         string
	DeliveryDate  *time.Time
}

// ItemRequest is one requested order line.
type ItemRequest struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   int64
	Notes       string
}

// CreateResult holds the output of a successfully assembled order.
type CreateResult struct {
	ID          int64
	OrderNumber string
}

// Service encapsulates order assembly and the status lifecycle.
type Service struct {
	orders  Repository
	numbers *NumberGenerator
	lg      *zap.Logger
}

// NewService creates an order Service.
func NewService(orders Repository, numbers *NumberGenerator, lg *zap.Logger) *Service {
	return &Service{
		orders:  orders,
		numbers: numbers,
		lg:      lg,
	}
}

// Create validates the request, prices each line, derives the order totals,
// assigns a fresh order number and persists the header plus all items in one
// transaction. A nonexistent customer or product is not pre-checked; the
// foreign key violation surfaces from the repository as ErrCustomerNotFound
// or ErrProductNotFound.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	items := make([]Item, len(req.Items))
	var totalAmount int64
	for i, it := range req.Items {
		if it.Quantity < 1 {
			return nil, &InvalidQuantityError{ProductID: it.ProductID}
		}
		line := lineTotal(it.Quantity, it.UnitPrice)
		items[i] = Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  line,
			Notes:       it.Notes,
		}
		totalAmount += line
	}

	o := &Order{
		OrderNumber:   s.numbers.Next(),
		CustomerID:    req.CustomerID,
		UserID:        req.UserID,
		Status:        StatusPending,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   totalAmount,
		Discount:      req.Discount,
		FinalAmount:   finalAmount(totalAmount, req.Discount),
		Notes:         req.Notes,
		DeliveryDate:  req.DeliveryDate,
	}

	id, err := s.orders.Create(ctx, o, items)
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	s.lg.Info("order created",
		zap.Int64("id", id),
		zap.String("order_number", o.OrderNumber),
		zap.Int64("final_amount", o.FinalAmount),
		zap.Int("items", len(items)),
	)

	return &CreateResult{ID: id, OrderNumber: o.OrderNumber}, nil
}

// UpdateStatus writes the target status on the order. Any valid status is
// accepted from any prior status; writes outside the CanTransition happy path
// are logged but not rejected.
func (s *Service) UpdateStatus(ctx context.Context, id int64, target Status) error {
	if !target.Valid() {
		return &InvalidStatusError{Status: string(target)}
	}

	current, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "get order")
	}

	if !CanTransition(current.Status, target) && current.Status != target {
		s.lg.Warn("status write outside happy path",
			zap.Int64("id", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(target)),
		)
	}

	if err := s.orders.UpdateStatus(ctx, id, target); err != nil {
		return errors.Wrap(err, "update order status")
	}
	return nil
}

// lineTotal is the exact integer price of one order line.
func lineTotal(quantity int, unitPrice int64) int64 {
	return int64(quantity) * unitPrice
}

// finalAmount derives the payable amount from the subtotal and discount. The
// discount is intentionally not capped at the subtotal, so the result can go
// negative; a future floor-at-zero policy belongs here.
func finalAmount(totalAmount, discount int64) int64 {
	return totalAmount - discount
}
