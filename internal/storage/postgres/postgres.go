// Package postgres implements the domain repositories on PostgreSQL via
// pgx/v5.
package postgres

import (
	"context"
	"fmt"
	"net"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordesk/backoffice/db"
	"github.com/ordesk/backoffice/internal/storage"
)

// NewPool creates a pgxpool.Pool for the given connection URL.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing database config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating connection pool")
	}

	return pool, nil
}

// RunMigrations executes the embedded DDL schema against the pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, db.Schema)
	if err != nil {
		return errors.Wrap(err, "running migrations")
	}
	return nil
}

// foreignKeyViolation is the PostgreSQL SQLSTATE for a failed referential
// integrity check, raised both for inserts pointing at missing rows and for
// deletes of rows that are still referenced.
const foreignKeyViolation = "23503"

// fkConstraint returns the violated foreign key constraint name, or "" when
// err is not a foreign key violation.
func fkConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return pgErr.ConstraintName
	}
	return ""
}

// wrapErr annotates a query error, substituting storage.ErrUnavailable when
// the database itself could not be reached.
func wrapErr(err error, msg string) error {
	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %v", msg, storage.ErrUnavailable, err)
	}
	return errors.Wrap(err, msg)
}
