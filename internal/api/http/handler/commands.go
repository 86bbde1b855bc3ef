package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/adamitejs/service-auth/internal/api/command"
	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/model"
)

// maxBodyBytes bounds a command request body.
const maxBodyBytes = 1 << 20

// Dispatcher runs named commands.
type Dispatcher interface {
	Has(name string) bool
	Dispatch(ctx context.Context, caller model.Caller, name string, args command.Args) (command.Result, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Commands serves command invocations and the health check over HTTP.
type Commands struct {
	dispatcher Dispatcher
	pinger     Pinger
	trustProxy bool
	logger     *logger.Logger
}

// NewCommands creates a new Commands handler. When trustProxy is set the
// caller address is taken from the first X-Forwarded-For entry.
func NewCommands(dispatcher Dispatcher, pinger Pinger, trustProxy bool, logger *logger.Logger) *Commands {
	return &Commands{
		dispatcher: dispatcher,
		pinger:     pinger,
		trustProxy: trustProxy,
		logger:     logger,
	}
}

// Execute handles POST /commands/{command}.
func (h *Commands) Execute(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["command"]
	caller := model.Caller{
		Address:     h.callerAddress(r),
		AdminSecret: r.URL.Query().Get("secret"),
	}

	if !h.dispatcher.Has(name) {
		h.fail(w, name, caller, fmt.Errorf("%w: %s", command.ErrUnknownCommand, name))
		return
	}

	args, err := decodeArgs(w, r)
	if err != nil {
		h.fail(w, name, caller, err)
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), caller, name, args)
	if err != nil {
		h.fail(w, name, caller, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Health handles GET /healthz.
func (h *Commands) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		h.logger.Error("HTTP handler: health check failed",
			"error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Commands) fail(w http.ResponseWriter, name string, caller model.Caller, err error) {
	code, message := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("HTTP handler: command failed",
			"command", name,
			"address", caller.Address,
			"error", err.Error())
	} else {
		h.logger.Info("HTTP handler: command rejected",
			"command", name,
			"address", caller.Address,
			"error", err.Error())
	}

	writeJSON(w, code, map[string]string{"error": message})
}

func (h *Commands) callerAddress(r *http.Request) string {
	if h.trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			return strings.TrimSpace(first)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// decodeArgs reads the JSON object body. An empty body yields no arguments.
func decodeArgs(w http.ResponseWriter, r *http.Request) (command.Args, error) {
	var args command.Args

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&args); err != nil {
		if errors.Is(err, io.EOF) {
			return command.Args{}, nil
		}
		return nil, fmt.Errorf("%w: malformed request body: %s", model.ErrInvalidArgument, err.Error())
	}

	return args, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
