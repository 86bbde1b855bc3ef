package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]User, error)
	Ping(ctx context.Context) error
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  time.Time
	LastLoginIP  string
	LoginCount   int64
	Disabled     bool
}

// Info returns the user projection that is safe to hand out to callers.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
		LastLoginIP: u.LastLoginIP,
		LoginCount:  u.LoginCount,
		Disabled:    u.Disabled,
	}
}

// UserInfo is a user record without its password hash.
type UserInfo struct {
	ID          uuid.UUID
	Email       string
	CreatedAt   time.Time
	LastLoginAt time.Time
	LastLoginIP string
	LoginCount  int64
	Disabled    bool
}

// UserUpdate describes a partial update of a user record.
// Nil fields are left untouched.
type UserUpdate struct {
	Email               *string
	PasswordHash        *string
	Disabled            *bool
	LastLoginAt         *time.Time
	LastLoginIP         *string
	IncrementLoginCount bool
}

// Apply mutates user in place with the fields set on the update.
func (u UserUpdate) Apply(user *User) {
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.PasswordHash != nil {
		user.PasswordHash = *u.PasswordHash
	}
	if u.Disabled != nil {
		user.Disabled = *u.Disabled
	}
	if u.LastLoginAt != nil {
		user.LastLoginAt = *u.LastLoginAt
	}
	if u.LastLoginIP != nil {
		user.LastLoginIP = *u.LastLoginIP
	}
	if u.IncrementLoginCount {
		user.LoginCount++
	}
}

// LoginCountDelta returns the amount the update adds to the login counter.
func (u UserUpdate) LoginCountDelta() int64 {
	if u.IncrementLoginCount {
		return 1
	}
	return 0
}
