package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adamitejs/service-auth/internal/model"
)

// AuthService is a mock of the auth service as seen by the transports.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, params model.LoginParams) (string, error) {
	ret := m.Called(ctx, params)
	return ret.String(0), ret.Error(1)
}

func (m *AuthService) Register(ctx context.Context, params model.RegisterParams) (string, error) {
	ret := m.Called(ctx, params)
	return ret.String(0), ret.Error(1)
}

func (m *AuthService) ValidateToken(ctx context.Context, token string) (model.Claims, error) {
	ret := m.Called(ctx, token)
	return ret.Get(0).(model.Claims), ret.Error(1)
}

func (m *AuthService) ListUsers(ctx context.Context, caller model.Caller) ([]model.UserInfo, error) {
	ret := m.Called(ctx, caller)
	var users []model.UserInfo
	if v := ret.Get(0); v != nil {
		users = v.([]model.UserInfo)
	}
	return users, ret.Error(1)
}

func (m *AuthService) GetUser(ctx context.Context, caller model.Caller, userID string) (*model.UserInfo, error) {
	ret := m.Called(ctx, caller, userID)
	var info *model.UserInfo
	if v := ret.Get(0); v != nil {
		info = v.(*model.UserInfo)
	}
	return info, ret.Error(1)
}

func (m *AuthService) SetUserEmail(ctx context.Context, caller model.Caller, userID, email string) error {
	ret := m.Called(ctx, caller, userID, email)
	return ret.Error(0)
}

func (m *AuthService) SetUserPassword(ctx context.Context, caller model.Caller, userID, password string) error {
	ret := m.Called(ctx, caller, userID, password)
	return ret.Error(0)
}

func (m *AuthService) SetUserDisabled(ctx context.Context, caller model.Caller, userID string, disabled bool) error {
	ret := m.Called(ctx, caller, userID, disabled)
	return ret.Error(0)
}

func (m *AuthService) DeleteUser(ctx context.Context, caller model.Caller, userID string) error {
	ret := m.Called(ctx, caller, userID)
	return ret.Error(0)
}

func (m *AuthService) Ping(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

// NewAuthService creates a new instance of AuthService. It also registers a
// cleanup function to assert the mocks expectations.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
