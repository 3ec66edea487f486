package persistence

import (
	context "context"

	entity "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

func (_m *MockUserRepository) user(ret mock.Arguments) (*entity.User, error) {
	var r0 *entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockUserRepository) users(ret mock.Arguments) ([]*entity.User, error) {
	var r0 []*entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.User)
	}
	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return _m.user(_m.Called(ctx, id))
}

// GetByEmail provides a mock function with given fields: ctx, email
func (_m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return _m.user(_m.Called(ctx, email))
}

// Create provides a mock function with given fields: ctx, user
func (_m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

// ListByRole provides a mock function with given fields: ctx, role, activeOnly
func (_m *MockUserRepository) ListByRole(ctx context.Context, role entity.Role, activeOnly bool) ([]*entity.User, error) {
	return _m.users(_m.Called(ctx, role, activeOnly))
}

// List provides a mock function with given fields: ctx
func (_m *MockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	return _m.users(_m.Called(ctx))
}

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
