package models

import (
	"time"

	"github.com/google/uuid"
)

type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "DRAFT"
	ListingStatusPublished ListingStatus = "PUBLISHED"
)

// Listing is the guest-facing representation of an approved property.
// Rates are whole units of the listing currency.
type Listing struct {
	ID          uuid.UUID     `json:"id"`
	PropertyID  uuid.UUID     `json:"property_id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	NightlyRate int           `json:"nightly_rate"`
	CleaningFee int           `json:"cleaning_fee"`
	MaxGuests   int           `json:"max_guests"`
	Status      ListingStatus `json:"status"`
	GuestPhotos []string      `json:"guest_photos"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (l *Listing) IsPublished() bool { return l.Status == ListingStatusPublished }
