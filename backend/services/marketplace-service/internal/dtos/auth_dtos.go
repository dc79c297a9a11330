package dtos

import (
	"time"

	shared_dtos "github.com/staynest/mono-repo/backend/shared/go-dtos"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=OWNER FREELANCER GUEST"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned by signup and login. The token is also set
// as the access cookie.
type SessionResponse struct {
	User        shared_dtos.User `json:"user"`
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}
