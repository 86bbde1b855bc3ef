package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/adamitejs/service-auth/internal/api/grpc/authpb"
	"github.com/adamitejs/service-auth/internal/api/grpc/handler"
	"github.com/adamitejs/service-auth/internal/api/grpc/middleware"
	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/model"
)

// Router builds the gRPC server for the auth services.
type Router struct {
	dispatcher     handler.Dispatcher
	gate           model.AccessGate
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	dispatcher handler.Dispatcher,
	gate model.AccessGate,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		dispatcher:     dispatcher,
		gate:           gate,
		contextManager: contextManager,
		logger:         logger,
	}
}

func adminOnly(_ context.Context, c interceptors.CallMeta) bool {
	return strings.HasPrefix(c.FullMethod(), authpb.AdminServicePrefix)
}

// Register registers the auth services, reflection and the interceptor chain.
// Interceptors run in order: panic recovery, request logging, caller
// extraction, then admin authorization for auth.Admin methods.
func (r *Router) Register() *grpc.Server {
	recoverer := middleware.NewRecovery(r.logger)
	logging := middleware.NewLogging(r.logger)
	caller := middleware.NewCaller(r.contextManager)
	authenticate := middleware.NewAuthenticate(r.gate, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(recoverer.Handle)),
			logging.HandleGRPC,
			caller.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(adminOnly),
			),
		),
	)
	r.registerAuthRoutes(s)
	r.registerAdminRoutes(s)
	reflection.Register(s)

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(r.dispatcher, r.contextManager, r.logger)
	authpb.RegisterAuthServer(server, authHandler)
}

func (r *Router) registerAdminRoutes(server *grpc.Server) {
	adminHandler := handler.NewAdmin(r.dispatcher, r.contextManager, r.logger)
	authpb.RegisterAdminServer(server, adminHandler)
}
