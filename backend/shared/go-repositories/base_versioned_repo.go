package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

// versionedTable serves the by-id reads and guarded updates shared by the
// tables that carry row_version (properties, projects).
type versionedTable[T RowVersioned] struct {
	db         DB
	selectByID string
	scan       func(pgx.Row) (T, error)
}

func newVersionedTable[T RowVersioned](db DB, selectByID string, scan func(pgx.Row) (T, error)) versionedTable[T] {
	return versionedTable[T]{db: db, selectByID: selectByID, scan: scan}
}

func (v versionedTable[T]) get(ctx context.Context, id uuid.UUID) (T, error) {
	return v.scan(v.db.QueryRow(ctx, v.selectByID, id))
}

// lock holds a row lock until the surrounding transaction ends; outside
// one it is a plain read.
func (v versionedTable[T]) lock(ctx context.Context, id uuid.UUID) (T, error) {
	return v.scan(v.db.QueryRow(ctx, v.selectByID+" FOR UPDATE", id))
}

func (v versionedTable[T]) updateWithRetry(ctx context.Context, id uuid.UUID, mutate func(T) error, update ConditionalUpdateFunc[T]) error {
	return UpdateVersioned(ctx, id, MaxUpdateAttempts, v.get, update, mutate)
}
