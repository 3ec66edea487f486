package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	t.Run("Valid user creation", func(t *testing.T) {
		user, err := NewUser(" Marie Ngo ", "Marie.Ngo@Example.com", RoleAuditor, "Yaounde", mockTime)

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Marie Ngo", user.Name)
		assert.Equal(t, "marie.ngo@example.com", user.Email)
		assert.Equal(t, RoleAuditor, user.Role)
		assert.Equal(t, "Yaounde", user.Agency)
		assert.True(t, user.Active)
		assert.Equal(t, fixedTime, user.CreatedAt)
		assert.Equal(t, fixedTime, user.UpdatedAt)
	})

	t.Run("Empty name", func(t *testing.T) {
		user, err := NewUser("  ", "a@b.co", RoleCashier, "", mockTime)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Nil(t, user)
	})

	t.Run("Invalid email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "@nowhere"} {
			t.Run(email, func(t *testing.T) {
				user, err := NewUser("Someone", email, RoleCashier, "", mockTime)
				assert.ErrorIs(t, err, errs.ErrValidation)
				assert.Nil(t, user)
			})
		}
	})

	t.Run("Unknown role", func(t *testing.T) {
		user, err := NewUser("Someone", "s@x.io", Role("janitor"), "", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidRole)
		assert.Nil(t, user)
	})
}

func TestIsExecutor(t *testing.T) {
	assert.True(t, (&User{Role: RoleExecutor, Active: true}).IsExecutor())
	assert.False(t, (&User{Role: RoleExecutor, Active: false}).IsExecutor())
	assert.False(t, (&User{Role: RoleCashier, Active: true}).IsExecutor())
}

func TestIsValidRole(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, IsValidRole(string(r)), r)
	}
	assert.False(t, IsValidRole("admin"))
	assert.False(t, IsValidRole(""))
}
