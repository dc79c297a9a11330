package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyStatus string

const (
	PropertyStatusPendingReview PropertyStatus = "PENDING_REVIEW"
	PropertyStatusApproved      PropertyStatus = "APPROVED"
	PropertyStatusRejected      PropertyStatus = "REJECTED"
	PropertyStatusListed        PropertyStatus = "LISTED"
)

// Property is the raw record an owner submits for review.
type Property struct {
	Versioned
	ID              uuid.UUID      `json:"id"`
	OwnerName       string         `json:"owner_name"`
	OwnerEmail      string         `json:"owner_email"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Address         string         `json:"address"`
	Photos          []string       `json:"photos"`
	BaseNightlyRate int            `json:"base_nightly_rate"`
	MaxGuests       int            `json:"max_guests"`
	Status          PropertyStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
