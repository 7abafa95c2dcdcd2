package transport

import (
	"fmt"
	"net"
	"time"
)

// Dialer opens raw network connections to a collector.
// Tests substitute their own implementation to avoid real sockets.
type Dialer interface {
	// Dial connects to the given host:port address.
	// A timeout of zero means no timeout.
	Dial(address string, timeout time.Duration) (net.Conn, error)
}

// NetDialer dials collectors over TCP.
type NetDialer struct{}

// Compile-time interface satisfaction check.
var _ Dialer = NetDialer{}

// Dial connects to the given address over TCP.
func (NetDialer) Dial(address string, timeout time.Duration) (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", address, err)
	}
	return conn, nil
}
