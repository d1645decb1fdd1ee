package discovery

import (
	"testing"
	"time"
)

func TestEndpoint_String(t *testing.T) {
	ep := &Endpoint{
		Hostname: "fc-1.local.",
		IP:       "192.168.4.16",
		Port:     5000,
	}

	expected := "flight computer fc-1 at 192.168.4.16:5000"
	if ep.String() != expected {
		t.Errorf("Endpoint.String() = %v, want %v", ep.String(), expected)
	}
}

func TestEndpoint_Address(t *testing.T) {
	tests := []struct {
		name     string
		endpoint *Endpoint
		expected string
	}{
		{
			name:     "default control-plane port",
			endpoint: &Endpoint{IP: "192.168.4.16", Port: 5000},
			expected: "192.168.4.16:5000",
		},
		{
			name:     "custom port",
			endpoint: &Endpoint{IP: "10.0.0.5", Port: 8080},
			expected: "10.0.0.5:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.endpoint.Address(); got != tt.expected {
				t.Errorf("Endpoint.Address() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEndpoint_GetMetadata(t *testing.T) {
	ep := &Endpoint{
		Metadata: map[string]string{
			"path":    "/",
			"srcvers": "1D90645",
		},
	}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "existing key", key: "path", expected: "/"},
		{name: "another existing key", key: "srcvers", expected: "1D90645"},
		{name: "non-existent key", key: "missing", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ep.GetMetadata(tt.key); got != tt.expected {
				t.Errorf("Endpoint.GetMetadata(%v) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestEndpoint_GetMetadata_NilMap(t *testing.T) {
	ep := &Endpoint{Metadata: nil}

	if got := ep.GetMetadata("anything"); got != "" {
		t.Errorf("Endpoint.GetMetadata() with nil map = %v, want empty string", got)
	}
}

func TestEndpoint_DiscoveredAt(t *testing.T) {
	now := time.Now()
	ep := &Endpoint{
		Hostname:     "fc-1.local.",
		DiscoveredAt: now,
	}

	if ep.DiscoveredAt != now {
		t.Errorf("Endpoint.DiscoveredAt = %v, want %v", ep.DiscoveredAt, now)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		hostname string
		want     string
	}{
		{"fc-1.local.", "fc-1"},
		{"fc-1.local", "fc-1"},
		{"unrecognized-host", "unrecognized-host"},
	}

	for _, tt := range tests {
		if got := displayName(tt.hostname); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.hostname, got, tt.want)
		}
	}
}
