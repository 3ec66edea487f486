package user

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
)

// CreateUser adds a user to the directory. Emails are unique.
func (u *UserUseCase) CreateUser(ctx context.Context, actor *entity.User, req usecase.CreateUserRequest) (*entity.User, error) {
	if err := u.authorize(actor, permission.ManageUsers); err != nil {
		return nil, err
	}
	if err := u.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := u.create(ctx, req.Name, req.Email, entity.Role(req.Role), req.Agency)
	if err != nil {
		return nil, err
	}

	u.logger.Info("User created", map[string]any{
		"user_id":    user.ID,
		"role":       user.Role,
		"created_by": actor.ID,
	})
	return user, nil
}

func (u *UserUseCase) create(ctx context.Context, name, email string, role entity.Role, agency string) (*entity.User, error) {
	user, err := entity.NewUser(name, email, role, agency, u.timeProvider)
	if err != nil {
		return nil, err
	}

	existing, err := u.userRepo.GetByEmail(ctx, user.Email)
	switch {
	case err == nil && existing != nil:
		return nil, errs.ErrDuplicateUser
	case err != nil && !errors.Is(err, errs.ErrUserNotFound):
		return nil, err
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureBootstrapAdmin creates the initial super_admin unless a user already holds email
func (u *UserUseCase) EnsureBootstrapAdmin(ctx context.Context, name, email string) (*entity.User, error) {
	existing, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		u.logger.Debug("Bootstrap admin already present", map[string]any{"user_id": existing.ID})
		return existing, nil
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	user, err := u.create(ctx, name, email, entity.RoleSuperAdmin, "")
	if errors.Is(err, errs.ErrDuplicateUser) {
		return u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	}
	if err != nil {
		return nil, err
	}

	u.logger.Info("Bootstrap admin created", map[string]any{"user_id": user.ID, "email": user.Email})
	return user, nil
}
