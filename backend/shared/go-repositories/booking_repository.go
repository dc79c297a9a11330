package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	LockByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)

	// MarkConfirmed sets CONFIRMED and records the Stripe references.
	// The total amount is never rewritten.
	MarkConfirmed(ctx context.Context, id uuid.UUID, stripeSessionID string, stripePaymentIntentID *string) error
}

type bookingRepo struct {
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, b *models.Booking) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO bookings (
            id, listing_id, guest_email, check_in, check_out, guests,
            total_amount, currency, status, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW())
    `,
		b.ID, b.ListingID, b.GuestEmail, b.CheckIn, b.CheckOut, b.Guests,
		b.TotalAmount, b.Currency, b.Status,
	)
	return err
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, baseSelectBooking()+" WHERE id=$1", id))
}

func (r *bookingRepo) LockByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, baseSelectBooking()+" WHERE id=$1 FOR UPDATE", id))
}

func (r *bookingRepo) MarkConfirmed(ctx context.Context, id uuid.UUID, stripeSessionID string, stripePaymentIntentID *string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE bookings SET
            status=$1, stripe_session_id=$2, stripe_payment_intent_id=$3, updated_at=NOW()
        WHERE id=$4
    `, models.BookingStatusConfirmed, stripeSessionID, stripePaymentIntentID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectBooking() string {
	return `
        SELECT
            id, listing_id, guest_email, check_in, check_out, guests,
            total_amount, currency, status,
            stripe_session_id, stripe_payment_intent_id,
            created_at, updated_at
        FROM bookings
    `
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.ListingID, &b.GuestEmail, &b.CheckIn, &b.CheckOut, &b.Guests,
		&b.TotalAmount, &b.Currency, &b.Status,
		&b.StripeSessionID, &b.StripePaymentIntentID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
