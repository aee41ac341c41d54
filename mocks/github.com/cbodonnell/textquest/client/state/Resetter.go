package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// Resetter is a mock type for the Resetter type
type Resetter struct {
	mock.Mock
}

// Reset provides a mock function with given fields: ctx
func (_m *Resetter) Reset(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Reset")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewResetter creates a new instance of Resetter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewResetter(t interface {
	mock.TestingT
	Cleanup(func())
}) *Resetter {
	mock := &Resetter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
