package persistence

import (
	context "context"

	entity "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockEventRepository is a mock type for the EventRepository type
type MockEventRepository struct {
	mock.Mock
}

// Append provides a mock function with given fields: ctx, event
func (_m *MockEventRepository) Append(ctx context.Context, event *entity.TransactionEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// ListByTransaction provides a mock function with given fields: ctx, transactionID
func (_m *MockEventRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.TransactionEvent, error) {
	ret := _m.Called(ctx, transactionID)

	var r0 []*entity.TransactionEvent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.TransactionEvent)
	}
	return r0, ret.Error(1)
}

// NewMockEventRepository creates a new instance of MockEventRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockEventRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventRepository {
	m := &MockEventRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
