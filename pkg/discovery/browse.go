package discovery

import (
	"context"
	"net"

	"github.com/enbility/zeroconf/v3"
)

// Config configures a Browser.
type Config struct {
	// Interface restricts browsing to one network interface.
	// Empty string means all interfaces.
	Interface string
}

// Browser finds collectors on the local network over mDNS.
type Browser struct {
	config Config
}

// NewBrowser creates a browser for collector services.
func NewBrowser(config Config) *Browser {
	return &Browser{config: config}
}

// Browse streams collectors as they are discovered, until ctx is done.
// Announcements are aggregated by instance name: addresses seen on
// multiple interfaces merge into a single entry, and an instance is
// forgotten once all of its addresses have been withdrawn.
func (b *Browser) Browse(ctx context.Context) (<-chan *Collector, error) {
	out := make(chan *Collector)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go aggregate(ctx, entries, removed, out)

	go func() {
		_ = zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, b.options()...)
	}()

	return out, nil
}

// FindFirst returns the first collector discovered, or an error when the
// context expires first.
func (b *Browser) FindFirst(ctx context.Context) (*Collector, error) {
	results, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}

	select {
	case c, ok := <-results:
		if !ok {
			return nil, ErrNotFound
		}
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// options returns zeroconf client options based on config.
func (b *Browser) options() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// aggregate folds per-interface announcements into per-instance
// collectors, emitting each instance once on first sight.
func aggregate(ctx context.Context, entries, removed <-chan *zeroconf.ServiceEntry, out chan<- *Collector) {
	defer close(out)

	services := make(map[string]*Collector)

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return
			}
			c := entryToCollector(entry)

			existing, found := services[c.InstanceName]
			if found {
				existing.Addresses = mergeAddresses(existing.Addresses, c.Addresses)
				continue
			}
			services[c.InstanceName] = c
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}

		case entry, ok := <-removed:
			if !ok {
				continue
			}
			if existing, found := services[entry.Instance]; found {
				existing.Addresses = removeAddresses(existing.Addresses, entry)
				if len(existing.Addresses) == 0 {
					delete(services, entry.Instance)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

// entryToCollector converts a zeroconf entry to a Collector.
func entryToCollector(entry *zeroconf.ServiceEntry) *Collector {
	meta := parseTXT(entry.Text)

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return &Collector{
		InstanceName: entry.Instance,
		Host:         entry.HostName,
		Port:         entry.Port,
		Addresses:    addrs,
		Version:      meta["version"],
		Region:       meta["region"],
	}
}

// mergeAddresses adds new addresses to the existing list, avoiding
// duplicates.
func mergeAddresses(existing, more []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}

	for _, addr := range more {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

// removeAddresses drops the entry's addresses from the list.
func removeAddresses(addresses []string, entry *zeroconf.ServiceEntry) []string {
	toRemove := make(map[string]bool)
	for _, ip := range entry.AddrIPv4 {
		toRemove[ip.String()] = true
	}
	for _, ip := range entry.AddrIPv6 {
		toRemove[ip.String()] = true
	}

	result := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !toRemove[addr] {
			result = append(result, addr)
		}
	}
	return result
}
