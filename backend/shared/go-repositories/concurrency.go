package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// MaxUpdateAttempts bounds the optimistic-lock loop behind operator edits.
const MaxUpdateAttempts = 3

// RowVersioned is a pointer entity backed by a row_version column.
type RowVersioned interface {
	comparable
	GetRowVersion() int64
	SetRowVersion(int64)
}

// LoadFunc reads the current row; a nil entity means no row.
type LoadFunc[T RowVersioned] func(ctx context.Context, id uuid.UUID) (T, error)

// ConditionalUpdateFunc writes entity only while row_version still equals
// expected.
type ConditionalUpdateFunc[T RowVersioned] func(ctx context.Context, entity T, expected int64) (pgconn.CommandTag, error)

/*
UpdateVersioned loads id, applies mutate and writes the row back guarded by
its row_version, reloading whenever another writer got there first.

A missing row is pgx.ErrNoRows. Losing every attempt wraps
utils.ErrRowVersionConflict.
*/
func UpdateVersioned[T RowVersioned](
	ctx context.Context,
	id uuid.UUID,
	attempts int,
	load LoadFunc[T],
	update ConditionalUpdateFunc[T],
	mutate func(T) error,
) error {
	var none T
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, err := load(ctx, id)
		if err != nil {
			return err
		}
		if current == none {
			return pgx.ErrNoRows
		}

		seen := current.GetRowVersion()
		if err := mutate(current); err != nil {
			return err
		}
		tag, err := update(ctx, current, seen)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			current.SetRowVersion(seen + 1)
			return nil
		}
		utils.Logger.WithFields(logrus.Fields{"id": id, "attempt": attempt}).Debug("row_version moved underneath update; reloading")
	}
	return fmt.Errorf("update %s gave up after %d attempts: %w", id, attempts, utils.ErrRowVersionConflict)
}
