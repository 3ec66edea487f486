package dto

import (
	"time"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
)

// CreateUserRequest represents the API request for adding a back-office user
type CreateUserRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Role   string `json:"role" binding:"required"`
	Agency string `json:"agency"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Agency    string    `json:"agency,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromUser maps a domain user to its API representation
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Agency:    u.Agency,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// FromUsers maps a list of users, never returning nil
func FromUsers(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}
