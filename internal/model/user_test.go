package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUser_Info(t *testing.T) {
	now := time.Now()
	u := User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    now,
		LastLoginAt:  now,
		LastLoginIP:  "10.0.0.1",
		LoginCount:   3,
		Disabled:     true,
	}

	info := u.Info()
	assert.Equal(t, u.ID, info.ID)
	assert.Equal(t, u.Email, info.Email)
	assert.Equal(t, u.CreatedAt, info.CreatedAt)
	assert.Equal(t, u.LastLoginAt, info.LastLoginAt)
	assert.Equal(t, u.LastLoginIP, info.LastLoginIP)
	assert.Equal(t, u.LoginCount, info.LoginCount)
	assert.True(t, info.Disabled)
}

func TestUserUpdate_Apply(t *testing.T) {
	email := "bob@example.com"
	hash := "new-hash"
	disabled := true
	at := time.Now()
	ip := "192.168.1.10"

	tests := []struct {
		name   string
		update UserUpdate
		check  func(t *testing.T, u User)
	}{
		{
			name:   "empty update keeps record",
			update: UserUpdate{},
			check: func(t *testing.T, u User) {
				assert.Equal(t, "alice@example.com", u.Email)
				assert.Equal(t, "old-hash", u.PasswordHash)
				assert.Equal(t, int64(1), u.LoginCount)
			},
		},
		{
			name:   "email and password",
			update: UserUpdate{Email: &email, PasswordHash: &hash},
			check: func(t *testing.T, u User) {
				assert.Equal(t, email, u.Email)
				assert.Equal(t, hash, u.PasswordHash)
				assert.False(t, u.Disabled)
			},
		},
		{
			name:   "disabled flag",
			update: UserUpdate{Disabled: &disabled},
			check: func(t *testing.T, u User) {
				assert.True(t, u.Disabled)
			},
		},
		{
			name:   "login bookkeeping",
			update: UserUpdate{LastLoginAt: &at, LastLoginIP: &ip, IncrementLoginCount: true},
			check: func(t *testing.T, u User) {
				assert.Equal(t, at, u.LastLoginAt)
				assert.Equal(t, ip, u.LastLoginIP)
				assert.Equal(t, int64(2), u.LoginCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Email: "alice@example.com", PasswordHash: "old-hash", LoginCount: 1}
			tt.update.Apply(&u)
			tt.check(t, u)
		})
	}
}

func TestUserUpdate_LoginCountDelta(t *testing.T) {
	assert.Equal(t, int64(0), UserUpdate{}.LoginCountDelta())
	assert.Equal(t, int64(1), UserUpdate{IncrementLoginCount: true}.LoginCountDelta())
}
