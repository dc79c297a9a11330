package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	LockByID(ctx context.Context, id uuid.UUID) (*models.Property, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.PropertyStatus) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	table versionedTable[*models.Property]
	db    DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1"
	r.table = newVersionedTable(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, owner_name, owner_email, title, description, address,
            photos, base_nightly_rate, max_guests, status,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW(), 1)
    `,
		p.ID,
		p.OwnerName,
		p.OwnerEmail,
		p.Title,
		p.Description,
		p.Address,
		p.Photos,
		p.BaseNightlyRate,
		p.MaxGuests,
		p.Status,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.table.get(ctx, id)
}

func (r *propertyRepo) LockByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.table.lock(ctx, id)
}

func (r *propertyRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PropertyStatus) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE properties
        SET status=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE properties SET
            title=$1, description=$2, address=$3,
            base_nightly_rate=$4, max_guests=$5,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$6 AND row_version=$7
    `,
		p.Title, p.Description, p.Address,
		p.BaseNightlyRate, p.MaxGuests,
		p.ID, expected,
	)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.table.updateWithRetry(ctx, id, mutate, r.UpdateIfVersion)
}

func baseSelectProperty() string {
	return `
        SELECT
            id, owner_name, owner_email, title, description, address,
            photos, base_nightly_rate, max_guests, status,
            created_at, updated_at, row_version
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.OwnerName,
		&p.OwnerEmail,
		&p.Title,
		&p.Description,
		&p.Address,
		&p.Photos,
		&p.BaseNightlyRate,
		&p.MaxGuests,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
