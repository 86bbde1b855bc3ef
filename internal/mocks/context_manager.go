package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adamitejs/service-auth/internal/model"
)

// ContextManager is a mock type for the model.ContextManager type.
type ContextManager struct {
	mock.Mock
}

var _ model.ContextManager = (*ContextManager)(nil)

func (m *ContextManager) SetCallerToContext(ctx context.Context, caller model.Caller) context.Context {
	ret := m.Called(ctx, caller)
	return ret.Get(0).(context.Context)
}

func (m *ContextManager) GetCallerFromContext(ctx context.Context) (model.Caller, bool) {
	ret := m.Called(ctx)
	return ret.Get(0).(model.Caller), ret.Bool(1)
}

// NewContextManager creates a new instance of ContextManager. It also registers
// a cleanup function to assert the mocks expectations.
func NewContextManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContextManager {
	m := &ContextManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
