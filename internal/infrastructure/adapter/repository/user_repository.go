package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func userToModel(u *entity.User) *model.User {
	return &model.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Agency:    u.Agency,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func modelToUser(m *model.User) *entity.User {
	return &entity.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      entity.Role(m.Role),
		Agency:    m.Agency,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate user operation", map[string]any{"user": key})
		return errs.ErrDuplicateUser
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user":  key,
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, id)
	}
	return modelToUser(&m), nil
}

// GetByEmail retrieves a user by login email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting user by email", err, email)
	}
	return modelToUser(&m), nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(userToModel(user)).Error; err != nil {
		return r.handleDatabaseError("creating user", err, user.Email)
	}

	r.logger.Debug("User stored", map[string]any{"user_id": user.ID, "role": user.Role})
	return nil
}

// ListByRole returns the users holding role ordered by name then id
func (r *UserRepository) ListByRole(ctx context.Context, role entity.Role, activeOnly bool) ([]*entity.User, error) {
	query := r.db.WithContext(ctx).Where("role = ?", string(role))
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	return r.find(query, "listing users by role")
}

// List returns every user ordered by name then id
func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	return r.find(r.db.WithContext(ctx), "listing users")
}

func (r *UserRepository) find(query *gorm.DB, operation string) ([]*entity.User, error) {
	var models []model.User
	if err := query.Order("name ASC, id ASC").Find(&models).Error; err != nil {
		return nil, r.handleDatabaseError(operation, err, "")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, modelToUser(&models[i]))
	}
	return users, nil
}
