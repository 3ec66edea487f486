package entity

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/google/uuid"
)

// User is a back-office identity. Every actor performing a transition is a User.
type User struct {
	ID        string    // Stable identifier (uuid)
	Name      string    // Display name, also used by the creator guards
	Email     string    // Login email, unique
	Role      Role      // Single role held by the user
	Agency    string    // Agency the user is attached to, may be empty
	Active    bool      // Inactive users are never picked as executors
	CreatedAt time.Time // When the user was created
	UpdatedAt time.Time // When the user was last updated
}

// NewUser creates an active user with a generated identifier
func NewUser(name, email string, role Role, agency string, timeProvider coreport.TimeProvider) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", errs.ErrValidation, email)
	}
	if !IsValidRole(string(role)) {
		return nil, errs.ErrInvalidRole
	}

	now := timeProvider.Now()
	return &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      role,
		Agency:    strings.TrimSpace(agency),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsExecutor reports whether the user can be bound to validated transactions
func (u *User) IsExecutor() bool {
	return u.Active && u.Role == RoleExecutor
}
