package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed set. Authorization checkpoints switch over every member.
type Role string

const (
	RoleOperator   Role = "OPERATOR"
	RoleOwner      Role = "OWNER"
	RoleFreelancer Role = "FREELANCER"
	RoleGuest      Role = "GUEST"
)

// ParseRole rejects anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOperator, RoleOwner, RoleFreelancer, RoleGuest:
		return Role(s), true
	default:
		return "", false
	}
}

// CanOperate reports whether the role may run operator actions.
func (r Role) CanOperate() bool {
	switch r {
	case RoleOperator:
		return true
	case RoleOwner, RoleFreelancer, RoleGuest:
		return false
	default:
		return false
	}
}

// SelfServiceSignup reports whether the role may be chosen at signup.
func (r Role) SelfServiceSignup() bool {
	switch r {
	case RoleOwner, RoleFreelancer, RoleGuest:
		return true
	case RoleOperator:
		return false
	default:
		return false
	}
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	PasswordHash *string   `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
