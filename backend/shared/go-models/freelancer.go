package models

import (
	"time"

	"github.com/google/uuid"
)

type FreelancerProfileStatus string

const (
	FreelancerProfileStatusActive FreelancerProfileStatus = "ACTIVE"
)

type FreelancerProfile struct {
	ID        uuid.UUID               `json:"id"`
	UserID    uuid.UUID               `json:"user_id"`
	Status    FreelancerProfileStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
}

type ApplicationStatus string

const (
	ApplicationStatusApplied  ApplicationStatus = "APPLIED"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

type FreelancerApplication struct {
	ID           uuid.UUID         `json:"id"`
	ProjectID    uuid.UUID         `json:"project_id"`
	FreelancerID uuid.UUID         `json:"freelancer_id"`
	Message      *string           `json:"message,omitempty"`
	Status       ApplicationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type AssignmentStatus string

const (
	AssignmentStatusAssigned AssignmentStatus = "ASSIGNED"
)

// Assignment records the freelancer chosen for a project.
type Assignment struct {
	ID           uuid.UUID        `json:"id"`
	ProjectID    uuid.UUID        `json:"project_id"`
	FreelancerID uuid.UUID        `json:"freelancer_id"`
	Status       AssignmentStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}
