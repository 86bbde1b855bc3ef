package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adamitejs/service-auth/internal/api/http/handler"
	"github.com/adamitejs/service-auth/internal/api/http/middleware"
	"github.com/adamitejs/service-auth/internal/logger"
)

// Router builds the HTTP handler for command invocations.
type Router struct {
	dispatcher handler.Dispatcher
	pinger     handler.Pinger
	trustProxy bool
	logger     *logger.Logger
}

// New creates new HTTP Router instance.
func New(dispatcher handler.Dispatcher, pinger handler.Pinger, trustProxy bool, logger *logger.Logger) *Router {
	return &Router{
		dispatcher: dispatcher,
		pinger:     pinger,
		trustProxy: trustProxy,
		logger:     logger,
	}
}

// Register returns the routed handler:
//
//	POST /commands/{command}
//	GET  /healthz
func (r *Router) Register() http.Handler {
	recoverer := middleware.NewRecovery(r.logger)
	logging := middleware.NewLogging(r.logger)
	commands := handler.NewCommands(r.dispatcher, r.pinger, r.trustProxy, r.logger)

	m := mux.NewRouter()
	m.Use(recoverer.Handle, logging.Handle)

	m.HandleFunc("/commands/{command}", commands.Execute).Methods(http.MethodPost)
	m.HandleFunc("/healthz", commands.Health).Methods(http.MethodGet)

	return m
}
