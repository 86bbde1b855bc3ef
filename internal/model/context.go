package model

import "context"

// Caller describes who invoked an operation.
type Caller struct {
	// Address is the caller's network address, without port.
	Address string
	// AdminSecret is the shared secret presented out of band, if any.
	AdminSecret string
}

// ContextManager stores and retrieves the caller on a request context.
type ContextManager interface {
	SetCallerToContext(ctx context.Context, caller Caller) context.Context
	GetCallerFromContext(ctx context.Context) (Caller, bool)
}

// AccessGate decides whether a caller may invoke privileged operations.
type AccessGate interface {
	Authorize(ctx context.Context, caller Caller) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, digest string) (bool, error)
}
