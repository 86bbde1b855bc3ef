package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/adamitejs/service-auth/internal/api/command"
	"github.com/adamitejs/service-auth/internal/api/grpc/authpb"
	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/model"
)

var _ authpb.AuthServer = (*Auth)(nil)

// Auth handles the public auth.Auth endpoints.
type Auth struct {
	commands
}

// NewAuth creates a new Auth handler.
func NewAuth(dispatcher Dispatcher, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{commands{
		dispatcher:     dispatcher,
		contextManager: contextManager,
		logger:         logger,
	}}
}

// LoginWithEmailAndPassword exchanges credentials for a token.
func (h *Auth) LoginWithEmailAndPassword(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.call(ctx, command.LoginWithEmailAndPassword, req)
}

// CreateUser registers a user and returns a token for it.
func (h *Auth) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.call(ctx, command.CreateUser, req)
}

// ValidateToken returns the claims of a valid token.
func (h *Auth) ValidateToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.call(ctx, command.ValidateToken, req)
}
