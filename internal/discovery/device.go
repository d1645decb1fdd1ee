package discovery

import (
	"fmt"
	"time"
)

// Endpoint represents a flight-computer control-plane endpoint found via
// mDNS discovery.
type Endpoint struct {
	// Hostname is the mDNS hostname advertising the service.
	Hostname string

	// IP is the IPv4 (preferred) or IPv6 address the endpoint resolved to.
	IP string

	// Port is the TCP control-plane port.
	Port int

	// Metadata contains additional mDNS TXT record data.
	Metadata map[string]string

	// DiscoveredAt is when the endpoint was discovered.
	DiscoveredAt time.Time
}

// String returns a human-readable representation of the endpoint.
func (e *Endpoint) String() string {
	return fmt.Sprintf("flight computer %s at %s", displayName(e.Hostname), e.Address())
}

// Address returns the host:port dial target for the bridge's TCP
// session.
func (e *Endpoint) Address() string {
	return fmt.Sprintf("%s:%d", e.IP, e.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string
// if not found.
func (e *Endpoint) GetMetadata(key string) string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata[key]
}
