package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adamitejs/service-auth/internal/logger"
)

// Recovery turns handler panics into Internal errors.
type Recovery struct {
	logger *logger.Logger
}

// NewRecovery creates a new Recovery handler.
func NewRecovery(logger *logger.Logger) *Recovery {
	return &Recovery{logger: logger}
}

// Handle is a recovery.RecoveryHandlerFuncContext.
func (r *Recovery) Handle(_ context.Context, p any) error {
	r.logger.Error("gRPC request panicked",
		"panic", fmt.Sprint(p),
		"stack", string(debug.Stack()))

	return status.Error(codes.Internal, "internal server error")
}
