package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/usecase/validation"
)

// UserUseCase handles the user directory.
// Reads for administration may go through a cache; identities are resolved from the authoritative store.
type UserUseCase struct {
	userRepo     persistence.UserRepository
	identities   persistence.UserRepository
	permissions  *permission.Table
	validator    *validation.ValidationHelper
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.UserUseCase = (*UserUseCase)(nil)

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	userRepo persistence.UserRepository,
	identities persistence.UserRepository,
	permissions *permission.Table,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		identities:   identities,
		permissions:  permissions,
		validator:    validation.NewValidationHelper(),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (u *UserUseCase) authorize(actor *entity.User, p permission.Permission) error {
	if actor == nil {
		return errs.ErrUnauthorized
	}
	if !u.permissions.HasPermission(actor.Role, p) {
		return errs.NewAuthorizationError(actor.ID, string(actor.Role), string(p), "missing permission")
	}
	return nil
}

// GetUser returns a user by id
func (u *UserUseCase) GetUser(ctx context.Context, actor *entity.User, id string) (*entity.User, error) {
	if err := u.authorize(actor, permission.ViewUsers); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, id)
}

// ListUsers returns the directory, restricted to role when it is not empty
func (u *UserUseCase) ListUsers(ctx context.Context, actor *entity.User, role string) ([]*entity.User, error) {
	if err := u.authorize(actor, permission.ViewUsers); err != nil {
		return nil, err
	}
	if role == "" {
		return u.userRepo.List(ctx)
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidRole, role)
	}
	return u.userRepo.ListByRole(ctx, entity.Role(role), false)
}

// ResolveActor loads the identity behind an authenticated request.
// Deactivation and role changes take effect on the next request.
func (u *UserUseCase) ResolveActor(ctx context.Context, id string) (*entity.User, error) {
	user, err := u.identities.GetByID(ctx, id)
	if errors.Is(err, errs.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: unknown user %s", errs.ErrUnauthorized, id)
	}
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: user %s is inactive", errs.ErrUnauthorized, id)
	}
	return user, nil
}
