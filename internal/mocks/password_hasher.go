package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adamitejs/service-auth/internal/model"
)

// PasswordHasher is a mock type for the model.PasswordHasher type.
type PasswordHasher struct {
	mock.Mock
}

var _ model.PasswordHasher = (*PasswordHasher)(nil)

func (m *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	ret := m.Called(ctx, password)
	return ret.String(0), ret.Error(1)
}

func (m *PasswordHasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	ret := m.Called(ctx, password, digest)
	return ret.Bool(0), ret.Error(1)
}

// NewPasswordHasher creates a new instance of PasswordHasher. It also registers
// a cleanup function to assert the mocks expectations.
func NewPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
