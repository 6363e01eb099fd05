package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/syllabus/internal/db"
)

// FaultyUoW runs callbacks in Inner's transaction but hands them a handle
// whose FailOn-th write (1-based) returns Err. Reads are untouched.
type FaultyUoW struct {
	Inner  db.UnitOfWork
	FailOn int32
	Err    error

	writes atomic.Int32
}

// NewFaultyUoW wraps a real unit of work over database.
func NewFaultyUoW(database *sql.DB, failOn int32, err error) *FaultyUoW {
	return &FaultyUoW{Inner: db.NewSQLiteUnitOfWork(database), FailOn: failOn, Err: err}
}

// Writes reports how many writes were attempted, including the failed one.
func (u *FaultyUoW) Writes() int {
	return int(u.writes.Load())
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &faultyConn{DBTX: tx, uow: u})
	})
}

type faultyConn struct {
	db.DBTX
	uow *FaultyUoW
}

func (c *faultyConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.uow.writes.Add(1) == c.uow.FailOn {
		return nil, c.uow.Err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
