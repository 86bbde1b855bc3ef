package model

import (
	"time"

	"github.com/google/uuid"
)

// Claims are the identity claims signed into a token.
type Claims struct {
	SubjectID uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and verifies signed identity tokens.
type TokenManager interface {
	Issue(claims Claims) (string, error)
	Verify(token string) (Claims, error)
}
