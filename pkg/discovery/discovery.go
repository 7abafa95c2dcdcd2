package discovery

import (
	"errors"
	"net"
	"strconv"
)

// Service constants.
const (
	// ServiceType is the mDNS service type collectors advertise under.
	ServiceType = "_clog._tcp"

	// Domain is the mDNS browse domain.
	Domain = "local."
)

// Discovery errors.
var (
	// ErrNotFound indicates no collector was discovered.
	ErrNotFound = errors.New("no collector found")
)

// Collector describes a collector instance advertised on the local
// network.
type Collector struct {
	// InstanceName is the mDNS instance name.
	InstanceName string

	// Host is the advertised hostname.
	Host string

	// Port is the collector TCP port.
	Port int

	// Addresses are the resolved IP addresses, IPv4 before IPv6.
	Addresses []string

	// Version is the advertised protocol version, if present.
	Version string

	// Region is the advertised placement hint, if present.
	Region string
}

// Addr returns a dialable host:port for the collector, preferring a
// resolved address over the advertised hostname.
func (c *Collector) Addr() string {
	host := c.Host
	if len(c.Addresses) > 0 {
		host = c.Addresses[0]
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Port))
}
