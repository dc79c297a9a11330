package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type ListingRepository interface {
	Create(ctx context.Context, l *models.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	GetByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Listing, error)
	LockByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*models.Listing, error)

	// Update writes the builder fields; status and publish time are untouched.
	Update(ctx context.Context, l *models.Listing) error
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error

	// ListPublished returns PUBLISHED listings, most recently published first.
	ListPublished(ctx context.Context) ([]*models.Listing, error)
}

type listingRepo struct {
	db DB
}

func NewListingRepository(db DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, l *models.Listing) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO listings (
            id, property_id, slug, title, description,
            nightly_rate, cleaning_fee, max_guests, status, guest_photos,
            published_at, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW(), NOW())
    `,
		l.ID, l.PropertyID, l.Slug, l.Title, l.Description,
		l.NightlyRate, l.CleaningFee, l.MaxGuests, l.Status, l.GuestPhotos,
		l.PublishedAt,
	)
	return err
}

func (r *listingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, baseSelectListing()+" WHERE id=$1", id))
}

func (r *listingRepo) GetByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, baseSelectListing()+" WHERE property_id=$1", propertyID))
}

func (r *listingRepo) LockByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, baseSelectListing()+" WHERE property_id=$1 FOR UPDATE", propertyID))
}

func (r *listingRepo) GetBySlug(ctx context.Context, slug string) (*models.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, baseSelectListing()+" WHERE slug=$1", slug))
}

func (r *listingRepo) Update(ctx context.Context, l *models.Listing) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE listings SET
            slug=$1, title=$2, description=$3,
            nightly_rate=$4, cleaning_fee=$5, max_guests=$6,
            guest_photos=$7, updated_at=NOW()
        WHERE id=$8
    `,
		l.Slug, l.Title, l.Description,
		l.NightlyRate, l.CleaningFee, l.MaxGuests,
		l.GuestPhotos, l.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepo) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE listings SET status=$1, published_at=$2, updated_at=NOW() WHERE id=$3
    `, models.ListingStatusPublished, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepo) ListPublished(ctx context.Context) ([]*models.Listing, error) {
	rows, err := r.db.Query(ctx,
		baseSelectListing()+" WHERE status=$1 ORDER BY published_at DESC NULLS LAST",
		models.ListingStatusPublished,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func baseSelectListing() string {
	return `
        SELECT
            id, property_id, slug, title, description,
            nightly_rate, cleaning_fee, max_guests, status, guest_photos,
            published_at, created_at, updated_at
        FROM listings
    `
}

func scanListing(row pgx.Row) (*models.Listing, error) {
	var l models.Listing
	err := row.Scan(
		&l.ID, &l.PropertyID, &l.Slug, &l.Title, &l.Description,
		&l.NightlyRate, &l.CleaningFee, &l.MaxGuests, &l.Status, &l.GuestPhotos,
		&l.PublishedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
