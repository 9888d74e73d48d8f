package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordesk/backoffice/internal/domain/customer"
	"github.com/ordesk/backoffice/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, order_number, customer_id, user_id, status, payment_method,
	total_amount, discount, final_amount, notes, delivery_date, created_at, updated_at`

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var o order.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.UserID, &o.Status, &o.PaymentMethod,
		&o.TotalAmount, &o.Discount, &o.FinalAmount, &o.Notes, &o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func scanItem(row pgx.CollectableRow) (order.Item, error) {
	var it order.Item
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
		&it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.Notes, &it.CreatedAt)
	return it, err
}

// Create inserts the order header and all items in a single transaction so a
// failure at any point rolls back the whole order. Foreign key violations are
// mapped to the domain errors for a missing customer or product.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order, items []order.Item) (int64, error) {
	var id int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO orders (order_number, customer_id, user_id, status, payment_method,
			                     total_amount, discount, final_amount, notes, delivery_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			o.OrderNumber, o.CustomerID, o.UserID, o.Status, o.PaymentMethod,
			o.TotalAmount, o.Discount, o.FinalAmount, o.Notes, o.DeliveryDate,
		).Scan(&id)
		if err != nil {
			return errors.Wrap(err, "insert order header")
		}

		for i := range items {
			_, err := tx.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, total_price, notes)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				id, items[i].ProductID, items[i].ProductName, items[i].Quantity,
				items[i].UnitPrice, items[i].TotalPrice, items[i].Notes,
			)
			if err != nil {
				return errors.Wrapf(err, "insert order item %d", i)
			}
		}
		return nil
	})
	if err != nil {
		switch constraint := fkConstraint(err); {
		case strings.Contains(constraint, "customer"):
			return 0, order.ErrCustomerNotFound
		case strings.Contains(constraint, "product"):
			return 0, order.ErrProductNotFound
		}
		return 0, wrapErr(err, fmt.Sprintf("creating order %s", o.OrderNumber))
	}
	return id, nil
}

// List returns matching orders newest-first.
func (r *OrderRepository) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders`
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CustomerID != nil {
		args = append(args, *f.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err, "listing orders")
	}

	out, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, errors.Wrap(err, "scanning orders")
	}
	return out, nil
}

// GetByID returns a single order header or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr(err, "getting order")
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting order %d", id)
	}
	return &o, nil
}

// GetDetails returns the order header joined with its items and customer.
func (r *OrderRepository) GetDetails(ctx context.Context, id int64) (*order.Details, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, product_id, product_name, quantity, unit_price, total_price, notes, created_at
		 FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, wrapErr(err, "listing order items")
	}
	items, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, errors.Wrap(err, "scanning order items")
	}

	var c customer.Customer
	rows, err = r.pool.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, o.CustomerID)
	if err != nil {
		return nil, wrapErr(err, "getting order customer")
	}
	c, err = pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrap(err, "scanning order customer")
	}

	d := &order.Details{Order: *o, Items: items}
	if err == nil {
		d.Customer = &c
	}
	return d, nil
}

// UpdateStatus overwrites the status field and touches updated_at. Amounts
// are unaffected.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, s order.Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, s)
	if err != nil {
		return wrapErr(err, "updating order status")
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// Delete removes the order; its items go with it via the cascading foreign
// key.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return wrapErr(err, "deleting order")
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}
