package collector

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/patricklucas/yelp-clog/pkg/report"
	"github.com/patricklucas/yelp-clog/pkg/transport"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Default configuration values.
const (
	// DefaultPort is the port collectors conventionally listen on.
	DefaultPort = 1463

	// DefaultRetryInterval is the minimum wait between connection attempts.
	DefaultRetryInterval = 10 * time.Second

	// DefaultTimeout bounds each connect, send and receive.
	DefaultTimeout = 1 * time.Second
)

// Config configures a collector Sink.
type Config struct {
	// Host is the collector hostname or IP address.
	Host string

	// Port is the collector TCP port.
	Port int

	// RetryInterval is the minimum wait between connection attempts
	// while the collector is unreachable. Zero disables throttling.
	RetryInterval time.Duration

	// Timeout bounds each connect, send and receive.
	// Zero means block indefinitely.
	Timeout time.Duration

	// MaxMessageSize caps the size of a single framed message.
	// Zero means transport.DefaultMaxMessageSize.
	MaxMessageSize uint32

	// Report receives delivery failure notices and oversized-line
	// notices. If nil, notices are discarded.
	Report report.Func

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Dialer opens the network connection. If nil, plain TCP is used.
	Dialer transport.Dialer
}

// DefaultConfig returns a Config with sensible defaults.
// Host must still be set by the caller.
func DefaultConfig() Config {
	return Config{
		Port:          DefaultPort,
		RetryInterval: DefaultRetryInterval,
		Timeout:       DefaultTimeout,
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.RetryInterval < 0 {
		return fmt.Errorf("%w: retry interval must not be negative", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Address returns the host:port target the sink connects to.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
