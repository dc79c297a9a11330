package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

// racyRow simulates a projects row that other writers bump lostRaces times.
type racyRow struct {
	stored    models.Project
	lostRaces int
	writes    int
}

func (r *racyRow) load(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	cp := r.stored
	return &cp, nil
}

func (r *racyRow) update(ctx context.Context, p *models.Project, expected int64) (pgconn.CommandTag, error) {
	if r.lostRaces > 0 {
		r.lostRaces--
		r.stored.RowVersion++
	}
	if r.stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	r.writes++
	r.stored = *p
	r.stored.RowVersion = expected + 1
	return pgconn.CommandTag("UPDATE 1"), nil
}

func TestUpdateVersionedRetriesLostRaces(t *testing.T) {
	id := uuid.New()
	row := &racyRow{stored: models.Project{ID: id, Versioned: models.Versioned{RowVersion: 1}}, lostRaces: 2}

	var calls int
	err := UpdateVersioned(context.Background(), id, MaxUpdateAttempts, row.load, row.update, func(p *models.Project) error {
		calls++
		p.Notes = utils.Ptr("checked keys")
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, 1, row.writes)
	require.Equal(t, int64(4), row.stored.RowVersion)
	require.Equal(t, "checked keys", *row.stored.Notes)
}

func TestUpdateVersionedGivesUp(t *testing.T) {
	id := uuid.New()
	row := &racyRow{stored: models.Project{ID: id}, lostRaces: MaxUpdateAttempts}

	err := UpdateVersioned(context.Background(), id, MaxUpdateAttempts, row.load, row.update, func(*models.Project) error { return nil })
	require.ErrorIs(t, err, utils.ErrRowVersionConflict)
	require.Zero(t, row.writes)
}

func TestUpdateVersionedMissingRowAndMutateError(t *testing.T) {
	missing := func(ctx context.Context, id uuid.UUID) (*models.Project, error) { return nil, nil }
	never := func(ctx context.Context, p *models.Project, expected int64) (pgconn.CommandTag, error) {
		t.Fatal("update must not run")
		return nil, nil
	}
	err := UpdateVersioned(context.Background(), uuid.New(), MaxUpdateAttempts, missing, never, func(*models.Project) error { return nil })
	require.ErrorIs(t, err, pgx.ErrNoRows)

	id := uuid.New()
	row := &racyRow{stored: models.Project{ID: id}}
	boom := errors.New("invalid notes")
	err = UpdateVersioned(context.Background(), id, MaxUpdateAttempts, row.load, never, func(*models.Project) error { return boom })
	require.ErrorIs(t, err, boom)
}
