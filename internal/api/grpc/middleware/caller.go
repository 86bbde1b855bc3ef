package middleware

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"

	grpcctx "github.com/adamitejs/service-auth/internal/api/grpc/context"
	"github.com/adamitejs/service-auth/internal/model"
)

// Caller is a unary interceptor that records the peer address and the
// presented admin secret on the request context.
type Caller struct {
	contextManager model.ContextManager
}

// NewCaller creates a new Caller middleware.
func NewCaller(contextManager model.ContextManager) *Caller {
	return &Caller{contextManager: contextManager}
}

// HandleGRPC stores the caller and invokes handler.
func (c *Caller) HandleGRPC(ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	caller := model.Caller{Address: peerAddress(ctx)}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		caller.AdminSecret = grpcctx.AdminSecretFromMetadata(md)
	}

	return handler(c.contextManager.SetCallerToContext(ctx, caller), req)
}

// peerAddress returns the peer's host, or the raw address when it has no port.
func peerAddress(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}

	addr := p.Addr.String()
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
