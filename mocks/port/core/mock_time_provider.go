package core

import (
	context "context"
	time "time"

	core "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	mock "github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock type for the TimeProvider type
type MockTimeProvider struct {
	mock.Mock
}

// Now provides a mock function with no fields
func (_m *MockTimeProvider) Now() time.Time {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() time.Time); ok {
		return rf()
	}
	return ret.Get(0).(time.Time)
}

// Since provides a mock function with given fields: t
func (_m *MockTimeProvider) Since(t time.Time) core.Duration {
	ret := _m.Called(t)
	return ret.Get(0).(core.Duration)
}

// WithTimeout provides a mock function with given fields: ctx, timeout
func (_m *MockTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	ret := _m.Called(ctx, timeout)
	return ret.Get(0).(context.Context), ret.Get(1).(context.CancelFunc)
}

// NewMockTimeProvider creates a new instance of MockTimeProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// NewFixedTimeProvider returns a MockTimeProvider whose Now always answers at
func NewFixedTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}, at time.Time) *MockTimeProvider {
	m := NewMockTimeProvider(t)
	m.On("Now").Return(at).Maybe()
	return m
}
