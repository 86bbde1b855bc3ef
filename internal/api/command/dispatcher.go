// Package command maps logical operation names to auth service calls. Both
// transports decode their requests into Args and encode the returned Result.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/model"
)

// ErrUnknownCommand is returned by Dispatch for an unregistered name.
var ErrUnknownCommand = errors.New("unknown command")

// Args are the decoded arguments of a command: JSON-compatible values only.
type Args map[string]any

// Result is a command's success payload: JSON-compatible values only.
type Result map[string]any

// HandlerFunc executes one command.
type HandlerFunc func(ctx context.Context, caller model.Caller, args Args) (Result, error)

// Dispatcher routes commands to registered handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	logger   *logger.Logger
}

func NewDispatcher(logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Register binds name to h, replacing any previous handler.
func (d *Dispatcher) Register(name string, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// Commands returns the registered names in sorted order.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (d *Dispatcher) Has(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[name]
	return ok
}

// Dispatch runs the handler registered for name.
func (d *Dispatcher) Dispatch(ctx context.Context, caller model.Caller, name string, args Args) (Result, error) {
	d.mu.RLock()
	h, ok := d.handlers[name]
	d.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if args == nil {
		args = Args{}
	}

	d.logger.Debug("Command dispatcher: dispatching",
		"command", name,
		"address", caller.Address)

	return h(ctx, caller, args)
}

// decode copies args into the payload struct dst via its json tags.
func decode(args Args, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidArgument, err.Error())
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidArgument, err.Error())
	}
	return nil
}
