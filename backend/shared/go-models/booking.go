package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
)

// Booking is a guest reservation. TotalAmount is in minor units of Currency
// and is fixed at creation.
type Booking struct {
	ID                    uuid.UUID     `json:"id"`
	ListingID             uuid.UUID     `json:"listing_id"`
	GuestEmail            string        `json:"guest_email"`
	CheckIn               time.Time     `json:"check_in"`
	CheckOut              time.Time     `json:"check_out"`
	Guests                int           `json:"guests"`
	TotalAmount           int64         `json:"total_amount"`
	Currency              string        `json:"currency"`
	Status                BookingStatus `json:"status"`
	StripeSessionID       *string       `json:"stripe_session_id,omitempty"`
	StripePaymentIntentID *string       `json:"stripe_payment_intent_id,omitempty"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}
