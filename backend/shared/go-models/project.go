package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusIntake            ProjectStatus = "INTAKE"
	ProjectStatusWaitingFreelancer ProjectStatus = "WAITING_FREELANCER"
	ProjectStatusAssigned          ProjectStatus = "ASSIGNED"
	ProjectStatusReadyToList       ProjectStatus = "READY_TO_LIST"
	ProjectStatusListed            ProjectStatus = "LISTED"
)

// AllProjectStatuses lists the lifecycle in pipeline order.
var AllProjectStatuses = []ProjectStatus{
	ProjectStatusIntake,
	ProjectStatusWaitingFreelancer,
	ProjectStatusAssigned,
	ProjectStatusReadyToList,
	ProjectStatusListed,
}

// ParseProjectStatus accepts only members of the closed status set.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	for _, st := range AllProjectStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Project tracks a property through review, freelancer assignment and listing.
type Project struct {
	Versioned
	ID         uuid.UUID     `json:"id"`
	PropertyID uuid.UUID     `json:"property_id"`
	Status     ProjectStatus `json:"status"`
	Notes      *string       `json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

/*
   Lifecycle guards. Callers check these while holding row locks on the
   project and its property, then write both records in one transaction.
*/

// CanApprove: INTAKE with the property still awaiting review.
func (p *Project) CanApprove(prop *Property) bool {
	return p.Status == ProjectStatusIntake && prop != nil && prop.Status == PropertyStatusPendingReview
}

// CanReject: INTAKE only.
func (p *Project) CanReject() bool {
	return p.Status == ProjectStatusIntake
}

// CanAssign: the project must be waiting for a freelancer.
func (p *Project) CanAssign() bool {
	return p.Status == ProjectStatusWaitingFreelancer
}

// IsOpenForApplications reports whether freelancers may apply.
func (p *Project) IsOpenForApplications() bool {
	return p.Status == ProjectStatusWaitingFreelancer
}
