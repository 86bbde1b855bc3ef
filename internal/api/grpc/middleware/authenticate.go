package middleware

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/model"
)

// Authenticate rejects admin calls whose caller the access gate refuses.
type Authenticate struct {
	gate           model.AccessGate
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(gate model.AccessGate, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{gate: gate, contextManager: contextManager, logger: logger}
}

// AuthFunc authorizes the caller stored by the Caller interceptor. It must run
// after that interceptor in the chain.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	caller, _ := m.contextManager.GetCallerFromContext(ctx)

	if caller.AdminSecret == "" {
		m.logger.Warn("Authenticate middleware: admin secret missing",
			"address", caller.Address)
		return nil, status.Error(codes.PermissionDenied, model.ErrUnauthorized.Error())
	}

	if err := m.gate.Authorize(ctx, caller); err != nil {
		m.logger.Warn("Authenticate middleware: admin secret rejected",
			"address", caller.Address)
		return nil, status.Error(codes.PermissionDenied, model.ErrUnauthorized.Error())
	}

	return ctx, nil
}
