// backend/shared/go-models/event_log.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventEntityType string

const (
	EntityProject  EventEntityType = "Project"
	EntityProperty EventEntityType = "Property"
	EntityListing  EventEntityType = "Listing"
	EntityBooking  EventEntityType = "Booking"
)

type EventType string

const (
	EventProjectApproved     EventType = "project_approved"
	EventProjectRejected     EventType = "project_rejected"
	EventProjectStatusForced EventType = "project_status_overridden"
	EventProjectNotesUpdated EventType = "project_notes_updated"
	EventFreelancerAssigned  EventType = "freelancer_assigned"
	EventListingSaved        EventType = "listing_saved"
	EventListingPublished    EventType = "listing_published"
	EventPropertyUpdated     EventType = "property_updated"
	EventBookingConfirmed    EventType = "booking_confirmed"
)

// EventLog is an append-only audit record. ActorID is nil for events
// raised by external callbacks.
type EventLog struct {
	ID         uuid.UUID        `json:"id"`
	EntityType EventEntityType  `json:"entity_type"`
	EntityID   uuid.UUID        `json:"entity_id"`
	Type       EventType        `json:"type"`
	ActorID    *string          `json:"actor_id,omitempty"`
	Data       *json.RawMessage `json:"data,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
