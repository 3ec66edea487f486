package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
	coremocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedTime = time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	admin     = &entity.User{ID: "u-admin", Name: "Admin", Role: entity.RoleSuperAdmin, Active: true}
	cashier   = &entity.User{ID: "u-cashier", Name: "Cashier", Role: entity.RoleCashier, Active: true}
)

func newUseCase(t *testing.T) (*UserUseCase, *persistencemocks.MockUserRepository) {
	mockRepo := persistencemocks.NewMockUserRepository(t)
	uc := NewUserUseCase(mockRepo, mockRepo, permission.NewTable(), coremocks.NewFixedTimeProvider(t, fixedTime), coremocks.NewMockLogger(t).AllowAll())
	return uc, mockRepo
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	req := usecase.CreateUserRequest{Name: "Paul Mbarga", Email: "Paul@Example.com", Role: "executor", Agency: "Douala"}

	t.Run("Successful user creation", func(t *testing.T) {
		uc, mockRepo := newUseCase(t)
		mockRepo.On("GetByEmail", mock.Anything, "paul@example.com").Return(nil, errs.ErrUserNotFound).Once()
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "paul@example.com" && u.Role == entity.RoleExecutor && u.Active
		})).Return(nil).Once()

		user, err := uc.CreateUser(ctx, admin, req)

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		uc, mockRepo := newUseCase(t)
		mockRepo.On("GetByEmail", mock.Anything, "paul@example.com").Return(&entity.User{ID: "existing"}, nil).Once()

		user, err := uc.CreateUser(ctx, admin, req)
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
		assert.Nil(t, user)
	})

	t.Run("Unknown role", func(t *testing.T) {
		uc, _ := newUseCase(t)
		bad := req
		bad.Role = "janitor"

		_, err := uc.CreateUser(ctx, admin, bad)
		assert.ErrorIs(t, err, errs.ErrInvalidRole)
	})

	t.Run("Invalid email", func(t *testing.T) {
		uc, _ := newUseCase(t)
		bad := req
		bad.Email = "nope"

		_, err := uc.CreateUser(ctx, admin, bad)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Cashier cannot manage users", func(t *testing.T) {
		uc, _ := newUseCase(t)
		_, err := uc.CreateUser(ctx, cashier, req)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("Repository failure", func(t *testing.T) {
		uc, mockRepo := newUseCase(t)
		mockRepo.On("GetByEmail", mock.Anything, "paul@example.com").Return(nil, errs.ErrDatabaseConnection).Once()

		_, err := uc.CreateUser(ctx, admin, req)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("By role", func(t *testing.T) {
		uc, mockRepo := newUseCase(t)
		mockRepo.On("ListByRole", mock.Anything, entity.RoleExecutor, false).Return([]*entity.User{{ID: "e1"}}, nil).Once()

		users, err := uc.ListUsers(ctx, admin, "executor")
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("All", func(t *testing.T) {
		uc, mockRepo := newUseCase(t)
		mockRepo.On("List", mock.Anything).Return([]*entity.User{{ID: "a"}, {ID: "b"}}, nil).Once()

		users, err := uc.ListUsers(ctx, admin, "")
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("Unknown role", func(t *testing.T) {
		uc, _ := newUseCase(t)
		_, err := uc.ListUsers(ctx, admin, "ghost")
		assert.ErrorIs(t, err, errs.ErrInvalidRole)
	})

	t.Run("Executor cannot view users", func(t *testing.T) {
		uc, _ := newUseCase(t)
		_, err := uc.ListUsers(ctx, &entity.User{ID: "x", Role: entity.RoleExecutor}, "")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestGetUser(t *testing.T) {
	uc, mockRepo := newUseCase(t)
	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, errs.ErrUserNotFound).Once()

	_, err := uc.GetUser(context.Background(), admin, "missing")
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestResolveActor(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		user     *entity.User
		repoErr  error
		expected error
	}{
		{"Active user", &entity.User{ID: "u1", Active: true}, nil, nil},
		{"Inactive user", &entity.User{ID: "u1", Active: false}, nil, errs.ErrUnauthorized},
		{"Unknown user", nil, errs.ErrUserNotFound, errs.ErrUnauthorized},
		{"Storage failure", nil, errs.ErrDatabaseConnection, errs.ErrDatabaseConnection},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, mockRepo := newUseCase(t)
			mockRepo.On("GetByID", mock.Anything, "u1").Return(tc.user, tc.repoErr).Once()

			user, err := uc.ResolveActor(ctx, "u1")
			if tc.expected == nil {
				require.NoError(t, err)
				assert.Equal(t, "u1", user.ID)
				return
			}
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, user)
		})
	}
}

func TestResolveActorIgnoresStaleDirectoryReads(t *testing.T) {
	ctx := context.Background()
	cached := persistencemocks.NewMockUserRepository(t)
	store := persistencemocks.NewMockUserRepository(t)
	uc := NewUserUseCase(cached, store, permission.NewTable(), coremocks.NewFixedTimeProvider(t, fixedTime), coremocks.NewMockLogger(t).AllowAll())

	cached.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", Role: entity.RoleDirector, Active: true}, nil).Maybe()
	store.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", Role: entity.RoleDirector, Active: false}, nil).Once()

	user, err := uc.ResolveActor(ctx, "u1")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Nil(t, user)
	cached.AssertNotCalled(t, "GetByID", mock.Anything, "u1")

	t.Run("Role change applies to the next request", func(t *testing.T) {
		store.On("GetByID", mock.Anything, "u2").Return(&entity.User{ID: "u2", Role: entity.RoleCashier, Active: true}, nil).Once()

		user, err := uc.ResolveActor(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleCashier, user.Role)
	})
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates when absent", func(t *testing.T) {
		uc, mockRepo := newUseCase(t)
		mockRepo.On("GetByEmail", mock.Anything, "root@backoffice.local").Return(nil, errs.ErrUserNotFound).Twice()
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.Role == entity.RoleSuperAdmin
		})).Return(nil).Once()

		user, err := uc.EnsureBootstrapAdmin(ctx, "Root", "Root@Backoffice.local")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleSuperAdmin, user.Role)
	})

	t.Run("Keeps existing", func(t *testing.T) {
		uc, mockRepo := newUseCase(t)
		existing := &entity.User{ID: "u-root", Role: entity.RoleSuperAdmin}
		mockRepo.On("GetByEmail", mock.Anything, "root@backoffice.local").Return(existing, nil).Once()

		user, err := uc.EnsureBootstrapAdmin(ctx, "Root", "root@backoffice.local")
		require.NoError(t, err)
		assert.Same(t, existing, user)
	})

	t.Run("Storage failure", func(t *testing.T) {
		uc, mockRepo := newUseCase(t)
		mockRepo.On("GetByEmail", mock.Anything, "root@backoffice.local").Return(nil, errors.New("dial tcp: refused")).Once()

		_, err := uc.EnsureBootstrapAdmin(ctx, "Root", "root@backoffice.local")
		assert.Error(t, err)
	})
}
