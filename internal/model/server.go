package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a transport serves on.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a transport that can be started and gracefully stopped.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
