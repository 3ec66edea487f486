package usecase

import (
	context "context"

	entity "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	usecase "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
	mock "github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock type for the UserUseCase type
type MockUserUseCase struct {
	mock.Mock
}

func (_m *MockUserUseCase) user(ret mock.Arguments) (*entity.User, error) {
	var r0 *entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.User)
	}
	return r0, ret.Error(1)
}

// CreateUser provides a mock function with given fields: ctx, actor, req
func (_m *MockUserUseCase) CreateUser(ctx context.Context, actor *entity.User, req usecase.CreateUserRequest) (*entity.User, error) {
	return _m.user(_m.Called(ctx, actor, req))
}

// GetUser provides a mock function with given fields: ctx, actor, id
func (_m *MockUserUseCase) GetUser(ctx context.Context, actor *entity.User, id string) (*entity.User, error) {
	return _m.user(_m.Called(ctx, actor, id))
}

// ListUsers provides a mock function with given fields: ctx, actor, role
func (_m *MockUserUseCase) ListUsers(ctx context.Context, actor *entity.User, role string) ([]*entity.User, error) {
	ret := _m.Called(ctx, actor, role)

	var r0 []*entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.User)
	}
	return r0, ret.Error(1)
}

// ResolveActor provides a mock function with given fields: ctx, id
func (_m *MockUserUseCase) ResolveActor(ctx context.Context, id string) (*entity.User, error) {
	return _m.user(_m.Called(ctx, id))
}

// EnsureBootstrapAdmin provides a mock function with given fields: ctx, name, email
func (_m *MockUserUseCase) EnsureBootstrapAdmin(ctx context.Context, name, email string) (*entity.User, error) {
	return _m.user(_m.Called(ctx, name, email))
}

// NewMockUserUseCase creates a new instance of MockUserUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUserUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserUseCase {
	m := &MockUserUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
