package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/ordesk/backoffice/internal/domain/dashboard"
)

var _ dashboard.Repository = (*DashboardRepository)(nil)

// DashboardRepository computes aggregate statistics over the live dataset.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository returns a DashboardRepository that uses the given
// pool.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// Stats runs the five aggregate queries concurrently and returns a
// point-in-time snapshot. Counts and the revenue sum are zero on an empty
// database.
func (r *DashboardRepository) Stats(ctx context.Context) (*dashboard.Stats, error) {
	var s dashboard.Stats

	g, ctx := errgroup.WithContext(ctx)
	count := func(sql string, dst *int64, args ...any) func() error {
		return func() error {
			if err := r.pool.QueryRow(ctx, sql, args...).Scan(dst); err != nil {
				return wrapErr(err, "dashboard query")
			}
			return nil
		}
	}

	g.Go(count(`SELECT count(*) FROM customers`, &s.TotalCustomers))
	g.Go(count(`SELECT count(*) FROM products`, &s.TotalProducts))
	g.Go(count(`SELECT count(*) FROM orders`, &s.TotalOrders))
	g.Go(count(`SELECT count(*) FROM orders WHERE status = $1`, &s.PendingOrders, "pending"))
	g.Go(count(`SELECT COALESCE(SUM(final_amount), 0) FROM orders WHERE status = $1`, &s.TotalRevenue, "completed"))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}
