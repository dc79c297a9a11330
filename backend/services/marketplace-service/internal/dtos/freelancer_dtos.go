package dtos

import (
	"time"

	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type ApplyRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

type ApplyResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"application_id"`
}

type OpenProject struct {
	ID        string               `json:"id"`
	Status    models.ProjectStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	Property  PropertySummary      `json:"property"`
}

type PropertySummary struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Address         string                `json:"address"`
	OwnerName       string                `json:"owner_name,omitempty"`
	BaseNightlyRate int                   `json:"base_nightly_rate"`
	MaxGuests       int                   `json:"max_guests"`
	Status          models.PropertyStatus `json:"status"`
}

func NewPropertySummary(p *models.Property) PropertySummary {
	return PropertySummary{
		ID:              p.ID.String(),
		Title:           p.Title,
		Address:         p.Address,
		OwnerName:       p.OwnerName,
		BaseNightlyRate: p.BaseNightlyRate,
		MaxGuests:       p.MaxGuests,
		Status:          p.Status,
	}
}
