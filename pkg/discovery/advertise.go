package discovery

import (
	"fmt"
	"net"

	"github.com/enbility/zeroconf/v3"
)

// Advertiser announces a collector endpoint on the local network, for
// the daemon side and for development setups.
type Advertiser struct {
	server *zeroconf.Server
}

// Advertise registers a collector instance under the clog service type.
// meta is published as TXT records; the "version" and "region" keys are
// the ones browsers surface. iface restricts the announcement to one
// interface, empty meaning all.
func Advertise(instance string, port int, meta map[string]string, iface string) (*Advertiser, error) {
	var ifaces []net.Interface
	if iface != "" {
		found, err := net.InterfaceByName(iface)
		if err != nil {
			return nil, fmt.Errorf("failed to look up interface %s: %w", iface, err)
		}
		ifaces = []net.Interface{*found}
	}

	server, err := zeroconf.Register(instance, ServiceType, Domain, port, formatTXT(meta), ifaces)
	if err != nil {
		return nil, fmt.Errorf("failed to register collector service: %w", err)
	}
	return &Advertiser{server: server}, nil
}

// Shutdown withdraws the announcement.
func (a *Advertiser) Shutdown() {
	a.server.Shutdown()
}
