package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adamitejs/service-auth/internal/model"
)

// AccessGate is a mock type for the model.AccessGate type.
type AccessGate struct {
	mock.Mock
}

var _ model.AccessGate = (*AccessGate)(nil)

func (m *AccessGate) Authorize(ctx context.Context, caller model.Caller) error {
	ret := m.Called(ctx, caller)
	return ret.Error(0)
}

// NewAccessGate creates a new instance of AccessGate. It also registers a
// cleanup function to assert the mocks expectations.
func NewAccessGate(t interface {
	mock.TestingT
	Cleanup(func())
}) *AccessGate {
	m := &AccessGate{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
