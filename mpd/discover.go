package mpd

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

// mdnsService is the DNS-SD service type MPD servers advertise themselves
// under (see mpd.conf's zeroconf_name / zeroconf_enabled).
const mdnsService = "_mpd._tcp"

// DiscoveredServer is one MPD server found via mDNS/DNS-SD browsing.
type DiscoveredServer struct {
	Instance  string
	Hostname  string
	Addresses []net.IP
	Port      int
	TXT       []string
}

// Addr returns a "host:port" string suitable for ConnectTCP, preferring the
// first discovered address.
func (d DiscoveredServer) Addr() (string, bool) {
	if len(d.Addresses) == 0 {
		return "", false
	}
	return fmt.Sprintf("%s:%d", d.Addresses[0], d.Port), true
}

// Discover performs a blocking mDNS browse for MPD servers on the local
// network and returns deduplicated, cleaned entries.
func Discover(timeout time.Duration) ([]DiscoveredServer, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("mpd: mdns resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	results := make(map[string]DiscoveredServer)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case e, ok := <-entries:
				if !ok {
					return
				}
				if e == nil {
					continue
				}
				addrs := make([]net.IP, 0, len(e.AddrIPv4)+len(e.AddrIPv6))
				addrs = append(addrs, e.AddrIPv4...)
				addrs = append(addrs, e.AddrIPv6...)

				key := fmt.Sprintf("%s|%d", e.HostName, e.Port)
				results[key] = DiscoveredServer{
					Instance:  strings.ReplaceAll(e.Instance, `\ `, " "),
					Hostname:  e.HostName,
					Addresses: addrs,
					Port:      e.Port,
					TXT:       append([]string{}, e.Text...),
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, mdnsService, "local.", entries); err != nil {
		return nil, fmt.Errorf("mpd: mdns browse: %w", err)
	}
	<-done

	out := make([]DiscoveredServer, 0, len(results))
	for _, d := range results {
		out = append(out, d)
	}
	return out, nil
}
