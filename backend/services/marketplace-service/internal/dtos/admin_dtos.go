package dtos

import (
	"time"

	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type ListingSummary struct {
	ID     string               `json:"id"`
	Slug   string               `json:"slug"`
	Status models.ListingStatus `json:"status"`
}

type ProjectSummary struct {
	ID        string               `json:"id"`
	Status    models.ProjectStatus `json:"status"`
	Notes     *string              `json:"notes,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Property  PropertySummary      `json:"property"`
	Listing   *ListingSummary      `json:"listing,omitempty"`
}

type FreelancerView struct {
	ProfileID string  `json:"profile_id"`
	UserID    string  `json:"user_id"`
	Name      *string `json:"name,omitempty"`
	Email     string  `json:"email"`
}

type ApplicationView struct {
	ID         string                   `json:"id"`
	Status     models.ApplicationStatus `json:"status"`
	Message    *string                  `json:"message,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
	Freelancer FreelancerView           `json:"freelancer"`
}

type ProjectDetail struct {
	Project      *models.Project      `json:"project"`
	Property     *models.Property     `json:"property"`
	Listing      *models.Listing      `json:"listing,omitempty"`
	Applications []ApplicationView    `json:"applications"`
	Assignments  []*models.Assignment `json:"assignments"`
	Events       []*models.EventLog   `json:"events"`
}

type AssignRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateNotesRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=10000"`
}

// UpdatePropertyRequest is a partial update; nil fields are left alone.
type UpdatePropertyRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,min=1,max=5000"`
	Address         *string `json:"address,omitempty" validate:"omitempty,min=1,max=500"`
	BaseNightlyRate *int    `json:"base_nightly_rate,omitempty" validate:"omitempty,min=1"`
	MaxGuests       *int    `json:"max_guests,omitempty" validate:"omitempty,min=1,max=50"`
}

// SaveListingRequest is decoded from the multipart listing builder form.
// Zero numeric values fall back to the listing defaults.
type SaveListingRequest struct {
	Title       string  `validate:"required,max=200"`
	Slug        string  `validate:"required,max=200"`
	Description *string `validate:"omitempty,max=5000"`
	NightlyRate int     `validate:"min=0"`
	CleaningFee int     `validate:"min=0"`
	MaxGuests   int     `validate:"min=0,max=50"`
}
