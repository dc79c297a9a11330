package dtos

import (
	"time"

	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type CreateBookingRequest struct {
	ListingID  string `json:"listing_id" validate:"required,uuid"`
	CheckIn    string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests     int    `json:"guests" validate:"required,min=1"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
}

type CreateBookingResponse struct {
	BookingID   string `json:"booking_id"`
	RedirectURL string `json:"redirect_url"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
}

type BookingListing struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type BookingDetail struct {
	ID              string               `json:"id"`
	Status          models.BookingStatus `json:"status"`
	GuestEmail      string               `json:"guest_email"`
	CheckIn         string               `json:"check_in"`
	CheckOut        string               `json:"check_out"`
	Guests          int                  `json:"guests"`
	TotalAmount     int64                `json:"total_amount"`
	Currency        string               `json:"currency"`
	CreatedAt       time.Time            `json:"created_at"`
	Listing         BookingListing       `json:"listing"`
	PropertyAddress string               `json:"property_address"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}
