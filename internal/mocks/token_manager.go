package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/adamitejs/service-auth/internal/model"
)

// TokenManager is a mock type for the model.TokenManager type.
type TokenManager struct {
	mock.Mock
}

var _ model.TokenManager = (*TokenManager)(nil)

func (m *TokenManager) Issue(claims model.Claims) (string, error) {
	ret := m.Called(claims)
	return ret.String(0), ret.Error(1)
}

func (m *TokenManager) Verify(token string) (model.Claims, error) {
	ret := m.Called(token)
	return ret.Get(0).(model.Claims), ret.Error(1)
}

// NewTokenManager creates a new instance of TokenManager. It also registers a
// cleanup function to assert the mocks expectations.
func NewTokenManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
