package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordesk/backoffice/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, description, sku, category_id, kind, price, unit, active, created_at, updated_at`

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.CategoryID,
		&p.Kind, &p.Price, &p.Unit, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns matching products newest-first. The search term is a
// case-insensitive substring match over name, description and SKU, combined
// with an optional category restriction.
func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products`
	var (
		conds []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR sku ILIKE $%d)",
			len(args), len(args), len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			sql += " WHERE " + c
		} else {
			sql += " AND " + c
		}
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err, "listing products")
	}

	out, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, errors.Wrap(err, "scanning products")
	}
	return out, nil
}

// GetByID returns a single product or product.ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr(err, "getting product")
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting product %d", id)
	}
	return &p, nil
}

// Create inserts a product and returns its id.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, sku, category_id, kind, price, unit, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		p.Name, p.Description, p.SKU, p.CategoryID, p.Kind, p.Price, p.Unit, p.Active,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr(err, "creating product")
	}
	return id, nil
}

// Update merges only the supplied fields into the product row.
func (r *ProductRepository) Update(ctx context.Context, id int64, p product.Patch) error {
	q := newPatchQuery("products", id)
	q.Set("name", p.Name)
	q.Set("description", p.Description)
	q.Set("sku", p.SKU)
	q.Set("category_id", p.CategoryID)
	q.Set("kind", (*string)(p.Kind))
	q.Set("price", p.Price)
	q.Set("unit", p.Unit)
	q.Set("active", p.Active)

	tag, err := r.pool.Exec(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return wrapErr(err, "updating product")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a product. Order items keep their name/price snapshot
// either way; a product still referenced by order items fails with
// product.ErrInUse.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if fkConstraint(err) != "" {
			return product.ErrInUse
		}
		return wrapErr(err, "deleting product")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}
