package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the querying surface shared by *pgxpool.Pool and pgx.Tx. Repositories
// are bound to a DBTX so callers decide whether work runs against the pool or
// inside an ambient transaction threaded down the call chain.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is a DBTX that can also open transactions. *pgxpool.Pool satisfies it.
type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}
