package usecase

import (
	context "context"

	entity "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	persistence "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	usecase "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
	mock "github.com/stretchr/testify/mock"
)

// MockTransactionUseCase is a mock type for the TransactionUseCase type
type MockTransactionUseCase struct {
	mock.Mock
}

func (_m *MockTransactionUseCase) transaction(ret mock.Arguments) (*entity.Transaction, error) {
	var r0 *entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, actor, req
func (_m *MockTransactionUseCase) Create(ctx context.Context, actor *entity.User, req usecase.CreateTransactionRequest) (*entity.Transaction, error) {
	return _m.transaction(_m.Called(ctx, actor, req))
}

// SubmitRealAmount provides a mock function with given fields: ctx, actor, id, realAmountEUR
func (_m *MockTransactionUseCase) SubmitRealAmount(ctx context.Context, actor *entity.User, id string, realAmountEUR int64) (*entity.Transaction, error) {
	return _m.transaction(_m.Called(ctx, actor, id, realAmountEUR))
}

// Execute provides a mock function with given fields: ctx, actor, id, req
func (_m *MockTransactionUseCase) Execute(ctx context.Context, actor *entity.User, id string, req usecase.ExecuteRequest) (*entity.Transaction, error) {
	return _m.transaction(_m.Called(ctx, actor, id, req))
}

// Close provides a mock function with given fields: ctx, actor, id
func (_m *MockTransactionUseCase) Close(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error) {
	return _m.transaction(_m.Called(ctx, actor, id))
}

// RequestDelete provides a mock function with given fields: ctx, actor, id
func (_m *MockTransactionUseCase) RequestDelete(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error) {
	return _m.transaction(_m.Called(ctx, actor, id))
}

// ApproveDelete provides a mock function with given fields: ctx, actor, id
func (_m *MockTransactionUseCase) ApproveDelete(ctx context.Context, actor *entity.User, id string) (*usecase.DeleteResult, error) {
	ret := _m.Called(ctx, actor, id)

	var r0 *usecase.DeleteResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.DeleteResult)
	}
	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, actor, id
func (_m *MockTransactionUseCase) Get(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error) {
	return _m.transaction(_m.Called(ctx, actor, id))
}

// List provides a mock function with given fields: ctx, actor, filter
func (_m *MockTransactionUseCase) List(ctx context.Context, actor *entity.User, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	ret := _m.Called(ctx, actor, filter)

	var r0 []*entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// History provides a mock function with given fields: ctx, actor, id
func (_m *MockTransactionUseCase) History(ctx context.Context, actor *entity.User, id string) ([]*entity.TransactionEvent, error) {
	ret := _m.Called(ctx, actor, id)

	var r0 []*entity.TransactionEvent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.TransactionEvent)
	}
	return r0, ret.Error(1)
}

// NewMockTransactionUseCase creates a new instance of MockTransactionUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTransactionUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionUseCase {
	m := &MockTransactionUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
