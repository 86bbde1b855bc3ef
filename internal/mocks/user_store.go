package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/adamitejs/service-auth/internal/model"
)

// UserStore is a mock type for the model.UserStore type.
type UserStore struct {
	mock.Mock
}

var _ model.UserStore = (*UserStore)(nil)

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := m.Called(ctx, email)
	if fn, ok := ret.Get(0).(func(context.Context, string) (model.User, error)); ok {
		return fn(ctx, email)
	}
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := m.Called(ctx, id)
	if fn, ok := ret.Get(0).(func(context.Context, uuid.UUID) (model.User, error)); ok {
		return fn(ctx, id)
	}
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := m.Called(ctx, user)
	if fn, ok := ret.Get(0).(func(context.Context, model.User) (model.User, error)); ok {
		return fn(ctx, user)
	}
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Update(ctx context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error) {
	ret := m.Called(ctx, id, update)
	if fn, ok := ret.Get(0).(func(context.Context, uuid.UUID, model.UserUpdate) (model.User, error)); ok {
		return fn(ctx, id, update)
	}
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *UserStore) List(ctx context.Context) ([]model.User, error) {
	ret := m.Called(ctx)
	var users []model.User
	if v := ret.Get(0); v != nil {
		users = v.([]model.User)
	}
	return users, ret.Error(1)
}

func (m *UserStore) Ping(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

// NewUserStore creates a new instance of UserStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewUserStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
