package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type flight computers advertise
	// their control-plane endpoint under.
	ServiceType = "_limewire-fc._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for endpoint discovery.
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default control-plane TCP port, used when an
	// mDNS entry omits an explicit port.
	DefaultPort = 5000
)

// hostnamePattern loosely matches flight-computer mDNS hostnames (e.g.,
// "fc-1.local", "fc.local"); any hostname ending in ".local." is accepted
// since board naming is not fixed, this only strips the suffix for
// display.
var hostnamePattern = regexp.MustCompile(`^(.+?)\.local\.?$`)

// Scanner handles mDNS discovery of flight-computer control-plane
// endpoints. Discovery is strictly opt-in: the bridge dials a fixed
// default address unless the operator passes --discover.
type Scanner struct {
	// Timeout is the maximum time to wait for endpoint discovery.
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings.
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForEndpoints discovers all flight computers advertising on the
// local network.
func (s *Scanner) ScanForEndpoints() ([]*Endpoint, error) {
	return s.ScanForEndpointsWithContext(context.Background())
}

// ScanForEndpointsWithContext discovers endpoints with a custom context.
func (s *Scanner) ScanForEndpointsWithContext(ctx context.Context) ([]*Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	endpoints := make([]*Endpoint, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			ep := s.parseServiceEntry(entry)
			if ep != nil {
				endpoints = append(endpoints, ep)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	return endpoints, nil
}

// WaitForFirst waits for the first flight computer to announce itself.
// Returns the endpoint or an error if none are found within timeout.
func (s *Scanner) WaitForFirst(ctx context.Context) (*Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Endpoint, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			ep := s.parseServiceEntry(entry)
			if ep != nil {
				select {
				case found <- ep:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case ep := <-found:
		return ep, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("no flight computer found within timeout")
	}
}

// parseServiceEntry converts a zeroconf service entry into an Endpoint.
// Returns nil if the entry carries no resolvable address.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Endpoint {
	hostname := entry.HostName
	if hostname == "" {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Endpoint{
		Hostname:     hostname,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// displayName strips the trailing ".local." suffix from a hostname for
// presentation in the operator dashboard.
func displayName(hostname string) string {
	if m := hostnamePattern.FindStringSubmatch(hostname); len(m) == 2 {
		return m[1]
	}
	return hostname
}

// ScanForEndpoints is a convenience function to scan with a custom
// timeout.
func ScanForEndpoints(timeout time.Duration) ([]*Endpoint, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForEndpoints()
}

// QuickScan performs a fast scan with a 3-second timeout.
func QuickScan() ([]*Endpoint, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.ScanForEndpoints()
}
