package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/adamitejs/service-auth/internal/api/command"
	"github.com/adamitejs/service-auth/internal/api/grpc/authpb"
	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/model"
)

var _ authpb.AdminServer = (*Admin)(nil)

// Admin handles the auth.Admin endpoints. Callers are authorized by the
// service against the secret carried in the request context.
type Admin struct {
	commands
}

// NewAdmin creates a new Admin handler.
func NewAdmin(dispatcher Dispatcher, contextManager model.ContextManager, logger *logger.Logger) *Admin {
	return &Admin{commands{
		dispatcher:     dispatcher,
		contextManager: contextManager,
		logger:         logger,
	}}
}

func (h *Admin) GetUsers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.call(ctx, command.AdminGetUsers, req)
}

func (h *Admin) GetUserInfo(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.call(ctx, command.AdminGetUserInfo, req)
}

func (h *Admin) SetUserEmail(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.call(ctx, command.AdminSetUserEmail, req)
}

func (h *Admin) SetUserPassword(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.call(ctx, command.AdminSetUserPassword, req)
}

func (h *Admin) SetUserDisabled(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.call(ctx, command.AdminSetUserDisabled, req)
}

func (h *Admin) DeleteUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.call(ctx, command.AdminDeleteUser, req)
}
