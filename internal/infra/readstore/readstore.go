// Package readstore implements the query-side store interfaces on top of
// PostgreSQL.
package readstore

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// querier is satisfied by both *pgxpool.Pool and an open transaction, so
// the same lookup helpers serve plain reads and in-transaction re-checks.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
