package config

import "time"

// Registry represents the entire user configuration file.
// This stores remembered flight-computer endpoints and application
// preferences. Store connection parameters are deliberately excluded;
// see settings.go.
type Registry struct {
	Version     int                  `yaml:"version"`
	Endpoints   map[string]*Endpoint `yaml:"endpoints,omitempty"` // Keyed by dial address
	Preferences *Preferences         `yaml:"preferences,omitempty"`
}

// Endpoint represents user-defined metadata for a single remembered
// flight-computer control-plane address. This is keyed by that address
// in Registry.Endpoints.
type Endpoint struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	Address  string    `yaml:"address"`             // host:port dial address
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last successful connection time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool `yaml:"auto_discover"`    // Enable automatic mDNS discovery on startup
	DiscoverTimeout int  `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:   1,
		Endpoints: make(map[string]*Endpoint),
		Preferences: &Preferences{
			AutoDiscover:    false,
			DiscoverTimeout: 5,
		},
	}
}

// GetEndpoint retrieves endpoint metadata by dial address.
// Returns nil if the endpoint doesn't exist in the registry.
func (r *Registry) GetEndpoint(address string) *Endpoint {
	return r.Endpoints[address]
}

// EnsureEndpoint ensures an endpoint entry exists in the registry.
// If the endpoint doesn't exist, creates a new entry.
// Returns the endpoint entry (existing or newly created).
func (r *Registry) EnsureEndpoint(address string) *Endpoint {
	if r.Endpoints == nil {
		r.Endpoints = make(map[string]*Endpoint)
	}

	if ep, exists := r.Endpoints[address]; exists {
		return ep
	}

	ep := &Endpoint{Address: address}
	r.Endpoints[address] = ep
	return ep
}

// RememberEndpoint records address as dialed just now, creating or
// updating its entry and setting LastSeen to now.
func (r *Registry) RememberEndpoint(address, nickname string) *Endpoint {
	ep := r.EnsureEndpoint(address)
	if nickname != "" {
		ep.Nickname = nickname
	}
	ep.LastSeen = time.Now()
	return ep
}

// SetEndpointNickname sets a user-friendly nickname for a remembered
// endpoint.
func (r *Registry) SetEndpointNickname(address, nickname string) {
	ep := r.EnsureEndpoint(address)
	ep.Nickname = nickname
}

// LastDialed returns the endpoint with the most recent LastSeen, or
// (nil, false) if the registry has none.
func (r *Registry) LastDialed() (*Endpoint, bool) {
	var best *Endpoint
	for _, ep := range r.Endpoints {
		if best == nil || ep.LastSeen.After(best.LastSeen) {
			best = ep
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
