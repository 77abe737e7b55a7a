package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql methods the task store needs. Both
// *sql.DB and *sql.Tx satisfy it, so the same store code runs plain queries
// and takes part in caller-managed transactions (renumbering runs that way
// through WithTx).
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
