package gateway

import (
	context "context"

	gateway "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/gateway"
	decimal "github.com/shopspring/decimal"
	mock "github.com/stretchr/testify/mock"
)

// MockRateProvider is a mock type for the RateProvider type
type MockRateProvider struct {
	mock.Mock
}

// RateFor provides a mock function with given fields: ctx, currency
func (_m *MockRateProvider) RateFor(ctx context.Context, currency string) (decimal.Decimal, error) {
	ret := _m.Called(ctx, currency)
	return ret.Get(0).(decimal.Decimal), ret.Error(1)
}

// MockNotifier is a mock type for the Notifier type
type MockNotifier struct {
	mock.Mock
}

// Notify provides a mock function with given fields: ctx, notification
func (_m *MockNotifier) Notify(ctx context.Context, notification gateway.Notification) error {
	ret := _m.Called(ctx, notification)
	return ret.Error(0)
}

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewMockRateProvider creates a new instance of MockRateProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockRateProvider(t testingT) *MockRateProvider {
	m := &MockRateProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewMockNotifier creates a new instance of MockNotifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockNotifier(t testingT) *MockNotifier {
	m := &MockNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
