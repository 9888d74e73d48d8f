package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordesk/backoffice/internal/domain/category"
)

var _ category.Repository = (*CategoryRepository)(nil)

// CategoryRepository implements category.Repository backed by PostgreSQL.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a CategoryRepository that uses the given
// pool.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, description, created_at, updated_at`

func scanCategory(row pgx.CollectableRow) (category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns all categories ordered alphabetically by name.
func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, wrapErr(err, "listing categories")
	}

	out, err := pgx.CollectRows(rows, scanCategory)
	if err != nil {
		return nil, errors.Wrap(err, "scanning categories")
	}
	return out, nil
}

// GetByID returns a single category or category.ErrNotFound.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr(err, "getting category")
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCategory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting category %d", id)
	}
	return &c, nil
}

// Create inserts a category and returns its id.
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Description,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr(err, "creating category")
	}
	return id, nil
}

// Update merges only the supplied fields into the category row.
func (r *CategoryRepository) Update(ctx context.Context, id int64, p category.Patch) error {
	q := newPatchQuery("categories", id)
	q.Set("name", p.Name)
	q.Set("description", p.Description)

	tag, err := r.pool.Exec(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return wrapErr(err, "updating category")
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a category. Products still referencing it make the
// delete fail with category.ErrInUse.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if fkConstraint(err) != "" {
			return category.ErrInUse
		}
		return wrapErr(err, "deleting category")
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}
