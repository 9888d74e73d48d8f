package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordesk/backoffice/internal/domain/customer"
)

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given
// pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `id, name, email, phone, document, address, city, state, zip_code, notes, active, created_at, updated_at`

func scanCustomer(row pgx.CollectableRow) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Document, &c.Address,
		&c.City, &c.State, &c.ZipCode, &c.Notes, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns customers newest-first. A non-empty search term is matched
// case-insensitively as a substring of name, email, phone or document.
func (r *CustomerRepository) List(ctx context.Context, search string) ([]customer.Customer, error) {
	sql := `SELECT ` + customerColumns + ` FROM customers`
	var args []any
	if search != "" {
		sql += ` WHERE name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1 OR document ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err, "listing customers")
	}

	out, err := pgx.CollectRows(rows, scanCustomer)
	if err != nil {
		return nil, errors.Wrap(err, "scanning customers")
	}
	return out, nil
}

// GetByID returns a single customer or customer.ErrNotFound.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr(err, "getting customer")
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting customer %d", id)
	}
	return &c, nil
}

// Create inserts a customer and returns its id.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO customers (name, email, phone, document, address, city, state, zip_code, notes, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		c.Name, c.Email, c.Phone, c.Document, c.Address, c.City, c.State, c.ZipCode, c.Notes, c.Active,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr(err, "creating customer")
	}
	return id, nil
}

// Update merges only the supplied fields into the customer row.
func (r *CustomerRepository) Update(ctx context.Context, id int64, p customer.Patch) error {
	q := newPatchQuery("customers", id)
	q.Set("name", p.Name)
	q.Set("email", p.Email)
	q.Set("phone", p.Phone)
	q.Set("document", p.Document)
	q.Set("address", p.Address)
	q.Set("city", p.City)
	q.Set("state", p.State)
	q.Set("zip_code", p.ZipCode)
	q.Set("notes", p.Notes)
	q.Set("active", p.Active)

	tag, err := r.pool.Exec(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return wrapErr(err, "updating customer")
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a customer. The no-cascade foreign key from orders
// turns a delete of a referenced customer into customer.ErrInUse; the order
// rows stay intact.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if fkConstraint(err) != "" {
			return customer.ErrInUse
		}
		return wrapErr(err, "deleting customer")
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}
