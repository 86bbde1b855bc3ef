package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/adamitejs/service-auth/internal/api/command"
	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/model"
)

// Dispatcher runs named commands.
type Dispatcher interface {
	Dispatch(ctx context.Context, caller model.Caller, name string, args command.Args) (command.Result, error)
}

// commands adapts Struct requests to dispatcher calls.
type commands struct {
	dispatcher     Dispatcher
	contextManager model.ContextManager
	logger         *logger.Logger
}

func (h *commands) call(ctx context.Context, name string, req *structpb.Struct) (*structpb.Struct, error) {
	caller, _ := h.contextManager.GetCallerFromContext(ctx)

	result, err := h.dispatcher.Dispatch(ctx, caller, name, command.Args(req.AsMap()))
	if err != nil {
		grpcErr := handleError(err)
		if status.Code(grpcErr) == codes.Internal {
			h.logger.Error("gRPC handler: command failed",
				"command", name,
				"address", caller.Address,
				"error", err.Error())
		} else {
			h.logger.Info("gRPC handler: command rejected",
				"command", name,
				"address", caller.Address,
				"error", err.Error())
		}
		return nil, grpcErr
	}

	out, err := structpb.NewStruct(result)
	if err != nil {
		h.logger.Error("gRPC handler: failed to encode result",
			"command", name,
			"error", err.Error())
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return out, nil
}
