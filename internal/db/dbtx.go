package db

import (
	"context"
	"database/sql"
)

// DBTX is what the run and submission repositories need from a connection.
// Both the pool and an open transaction satisfy it, so one repository type
// serves plain reads and transactional saves alike.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

type txKey struct{}

// TxFromContext returns the transaction opened by an enclosing WithinTx when
// conn is the connection pool. Any other handle is already scoped by its
// caller and comes back unchanged.
func TxFromContext(ctx context.Context, conn DBTX) DBTX {
	if _, pooled := conn.(*sql.DB); !pooled {
		return conn
	}
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return conn
}

func contextWithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}
