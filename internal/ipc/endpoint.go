package ipc

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

const defaultBridgeAddr = "127.0.0.1:47911"

// Endpoint describes where the bridge listens for host connections.
type Endpoint struct {
	Network string
	Address string
}

// DefaultEndpoint resolves the bridge endpoint using environment overrides.
// A plain address is tcp; a "unix:" prefix selects a unix socket, which is
// the natural transport for a same-host bridge.
func DefaultEndpoint() Endpoint {
	if addr := strings.TrimSpace(os.Getenv("MENUBRIDGE_ADDR")); addr != "" {
		return ParseEndpoint(addr)
	}
	return Endpoint{Network: "tcp", Address: defaultBridgeAddr}
}

// ParseEndpoint interprets an address string into an Endpoint.
func ParseEndpoint(addr string) Endpoint {
	if path, ok := strings.CutPrefix(addr, "unix:"); ok {
		return Endpoint{Network: "unix", Address: path}
	}
	return Endpoint{Network: "tcp", Address: addr}
}

// Listen binds to the configured endpoint. Stale unix sockets left behind by
// a crashed process are removed first.
func (e Endpoint) Listen() (net.Listener, error) {
	if e.Network == "unix" {
		_ = os.Remove(e.Address)
	}
	return net.Listen(e.Network, e.Address)
}

// DialContext establishes a host connection with a sensible timeout.
func (e Endpoint) DialContext(ctx context.Context) (net.Conn, error) {
	d := &net.Dialer{Timeout: 5 * time.Second}
	return d.DialContext(ctx, e.Network, e.Address)
}

// String provides a readable representation for logs.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s://%s", e.Network, e.Address)
}
