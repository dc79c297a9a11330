package dtos

import "github.com/staynest/mono-repo/backend/shared/go-models"

// User is the public view of an account, without the password hash.
type User struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  *string     `json:"name,omitempty"`
	Role  models.Role `json:"role"`
}

// NewUserFromModel creates a User DTO from a models.User.
func NewUserFromModel(u models.User) User {
	return User{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
