// Package access gates privileged operations.
package access

import (
	"context"
	"crypto/subtle"

	"github.com/adamitejs/service-auth/internal/model"
)

// New returns a SharedSecret gate, or DenyAll when no secret is configured.
func New(secret string) model.AccessGate {
	if secret == "" {
		return DenyAll{}
	}
	return NewSharedSecret(secret)
}

// SharedSecret grants access to callers presenting the configured secret.
type SharedSecret struct {
	secret []byte
}

// NewSharedSecret creates a gate comparing against secret.
func NewSharedSecret(secret string) *SharedSecret {
	return &SharedSecret{secret: []byte(secret)}
}

// Authorize implements model.AccessGate.
func (s *SharedSecret) Authorize(_ context.Context, caller model.Caller) error {
	if caller.AdminSecret == "" || len(s.secret) == 0 {
		return model.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(caller.AdminSecret), s.secret) != 1 {
		return model.ErrUnauthorized
	}
	return nil
}

// DenyAll rejects every caller.
type DenyAll struct{}

// Authorize implements model.AccessGate.
func (DenyAll) Authorize(context.Context, model.Caller) error {
	return model.ErrUnauthorized
}
