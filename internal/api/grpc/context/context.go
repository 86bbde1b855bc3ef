package context

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/adamitejs/service-auth/internal/model"
)

// Metadata keys carrying the caller through the interceptor chain.
// AdminSecretKey is also the key clients send the shared secret under.
const (
	CallerAddressKey string = "x-caller-address"
	AdminSecretKey   string = "x-admin-secret"
)

// Manager stores the caller of a gRPC request in its incoming metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetCallerToContext writes caller into the incoming metadata of ctx,
// replacing any values the client sent under the same keys.
func (m *Manager) SetCallerToContext(ctx context.Context, caller model.Caller) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	} else {
		md = md.Copy()
	}

	md.Set(CallerAddressKey, caller.Address)
	if caller.AdminSecret == "" {
		md.Delete(AdminSecretKey)
	} else {
		md.Set(AdminSecretKey, caller.AdminSecret)
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetCallerFromContext reads the caller set by SetCallerToContext.
// It reports false when no caller address is present.
func (m *Manager) GetCallerFromContext(ctx context.Context) (model.Caller, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return model.Caller{}, false
	}

	addresses := md.Get(CallerAddressKey)
	if len(addresses) == 0 {
		return model.Caller{}, false
	}

	return model.Caller{
		Address:     addresses[0],
		AdminSecret: AdminSecretFromMetadata(md),
	}, true
}

// AdminSecretFromMetadata returns the first admin secret value in md.
func AdminSecretFromMetadata(md metadata.MD) string {
	secrets := md.Get(AdminSecretKey)
	if len(secrets) == 0 {
		return ""
	}
	return secrets[0]
}
