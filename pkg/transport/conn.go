package transport

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// Connection errors.
var (
	// ErrConnectionClosed indicates the connection has been closed.
	ErrConnectionClosed = errors.New("connection closed")
)

// Conn is a framed connection to a collector.
// It wraps a net.Conn with length-prefixed framing and per-call deadlines.
type Conn struct {
	conn      net.Conn
	framer    *Framer
	timeout   time.Duration
	closeCh   chan struct{}
	closeOnce sync.Once

	writeMu sync.Mutex
	readMu  sync.Mutex
}

// NewConn wraps an established network connection.
// A timeout of zero disables per-call deadlines.
func NewConn(nc net.Conn, maxMessageSize uint32, timeout time.Duration) *Conn {
	if maxMessageSize == 0 {
		maxMessageSize = DefaultMaxMessageSize
	}
	return &Conn{
		conn:    nc,
		framer:  NewFramerWithMaxSize(nc, maxMessageSize),
		timeout: timeout,
		closeCh: make(chan struct{}),
	}
}

// Send writes a framed message to the connection.
// Thread-safe: can be called from multiple goroutines.
func (c *Conn) Send(data []byte) error {
	select {
	case <-c.closeCh:
		return ErrConnectionClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.timeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}
		defer c.conn.SetWriteDeadline(time.Time{})
	}

	if err := c.framer.WriteFrame(data); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Receive reads a framed message from the connection.
// Thread-safe: can be called from multiple goroutines.
func (c *Conn) Receive() ([]byte, error) {
	select {
	case <-c.closeCh:
		return nil, ErrConnectionClosed
	default:
	}

	c.readMu.Lock()
	defer c.readMu.Unlock()

	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}
		defer c.conn.SetReadDeadline(time.Time{})
	}

	data, err := c.framer.ReadFrame()
	if err != nil {
		select {
		case <-c.closeCh:
			return nil, ErrConnectionClosed
		default:
		}
		return nil, fmt.Errorf("failed to receive message: %w", err)
	}
	return data, nil
}

// Close closes the connection. Safe to call multiple times.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
	})
	return err
}

// Closed reports whether the connection has been closed.
func (c *Conn) Closed() bool {
	select {
	case <-c.closeCh:
		return true
	default:
		return false
	}
}

// RemoteAddr returns the remote address of the connection.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// LocalAddr returns the local address of the connection.
func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}
