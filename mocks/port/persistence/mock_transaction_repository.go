package persistence

import (
	context "context"

	entity "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	persistence "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	mock "github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock type for the TransactionRepository type
type MockTransactionRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, transaction
func (_m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	ret := _m.Called(ctx, transaction)
	return ret.Error(0)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, string) (*entity.Transaction, error)); ok {
		return rf(ctx, id)
	}

	var r0 *entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, filter
func (_m *MockTransactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// UpdateIfStatus provides a mock function with given fields: ctx, transaction, expected
func (_m *MockTransactionRepository) UpdateIfStatus(ctx context.Context, transaction *entity.Transaction, expected entity.TransactionStatus) error {
	ret := _m.Called(ctx, transaction, expected)

	if rf, ok := ret.Get(0).(func(context.Context, *entity.Transaction, entity.TransactionStatus) error); ok {
		return rf(ctx, transaction, expected)
	}
	return ret.Error(0)
}

// DeleteIfStatus provides a mock function with given fields: ctx, id, expected
func (_m *MockTransactionRepository) DeleteIfStatus(ctx context.Context, id string, expected entity.TransactionStatus) error {
	ret := _m.Called(ctx, id, expected)
	return ret.Error(0)
}

// NewMockTransactionRepository creates a new instance of MockTransactionRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
