package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name         string
		entry        *zeroconf.ServiceEntry
		wantNil      bool
		wantHostname string
		wantIP       string
		wantPort     int
	}{
		{
			name: "flight computer with IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "fc-1.local.",
				Port:     5000,
				AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
				Text:     []string{"board=FC", "firmware=1D90645"},
			},
			wantNil:      false,
			wantHostname: "fc-1.local.",
			wantIP:       "192.168.4.16",
			wantPort:     5000,
		},
		{
			name: "endpoint with custom port",
			entry: &zeroconf.ServiceEntry{
				HostName: "fc-2.local",
				Port:     8080,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.100")},
			},
			wantNil:      false,
			wantHostname: "fc-2.local",
			wantIP:       "192.168.1.100",
			wantPort:     8080,
		},
		{
			name: "endpoint with no port specified (should default)",
			entry: &zeroconf.ServiceEntry{
				HostName: "fc-3.local",
				Port:     0,
				AddrIPv4: []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantNil:      false,
			wantHostname: "fc-3.local",
			wantIP:       "172.16.0.1",
			wantPort:     DefaultPort,
		},
		{
			name: "empty hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "",
				Port:     5000,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				HostName: "fc-4.local",
				Port:     5000,
				AddrIPv4: []net.IP{},
				AddrIPv6: []net.IP{},
			},
			wantNil: true,
		},
		{
			name: "IPv6 only endpoint",
			entry: &zeroconf.ServiceEntry{
				HostName: "fc-5.local",
				Port:     5000,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:      false,
			wantHostname: "fc-5.local",
			wantIP:       "fe80::1",
			wantPort:     5000,
		},
		{
			name: "endpoint with both IPv4 and IPv6 (should prefer IPv4)",
			entry: &zeroconf.ServiceEntry{
				HostName: "fc-6.local",
				Port:     5000,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
			},
			wantNil:      false,
			wantHostname: "fc-6.local",
			wantIP:       "192.168.1.50",
			wantPort:     5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if ep != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", ep)
				}
				return
			}

			if ep == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil endpoint")
			}

			if ep.IP != tt.wantIP {
				t.Errorf("endpoint.IP = %v, want %v", ep.IP, tt.wantIP)
			}

			if ep.Port != tt.wantPort {
				t.Errorf("endpoint.Port = %v, want %v", ep.Port, tt.wantPort)
			}

			if ep.Hostname != tt.wantHostname {
				t.Errorf("endpoint.Hostname = %v, want %v", ep.Hostname, tt.wantHostname)
			}

			if time.Since(ep.DiscoveredAt) > time.Second {
				t.Errorf("endpoint.DiscoveredAt is not recent: %v", ep.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	scanner := NewScanner()

	entry := &zeroconf.ServiceEntry{
		HostName: "fc-1.local",
		Port:     5000,
		AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
		Text:     []string{"board=FC", "firmware=1D90645", "flag", "version=1.0"},
	}

	ep := scanner.parseServiceEntry(entry)
	if ep == nil {
		t.Fatal("parseServiceEntry() = nil, want endpoint")
	}

	expectedMetadata := map[string]string{
		"board":    "FC",
		"firmware": "1D90645",
		"flag":     "", // Key without value
		"version":  "1.0",
	}

	if len(ep.Metadata) != len(expectedMetadata) {
		t.Errorf("endpoint.Metadata has %d entries, want %d", len(ep.Metadata), len(expectedMetadata))
	}

	for key, expectedValue := range expectedMetadata {
		if actualValue, ok := ep.Metadata[key]; !ok {
			t.Errorf("endpoint.Metadata missing key %q", key)
		} else if actualValue != expectedValue {
			t.Errorf("endpoint.Metadata[%q] = %q, want %q", key, actualValue, expectedValue)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestHostnamePattern(t *testing.T) {
	tests := []struct {
		hostname    string
		shouldMatch bool
		stripped    string
	}{
		{"fc-1.local.", true, "fc-1"},
		{"fc-1.local", true, "fc-1"},
		{"anything.local", true, "anything"},
		{"anything", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			matches := hostnamePattern.FindStringSubmatch(tt.hostname)

			if tt.shouldMatch {
				if matches == nil || len(matches) < 2 {
					t.Errorf("hostnamePattern did not match %q", tt.hostname)
				} else if matches[1] != tt.stripped {
					t.Errorf("hostnamePattern matched %q with %q, want %q", tt.hostname, matches[1], tt.stripped)
				}
			} else if matches != nil {
				t.Errorf("hostnamePattern matched %q, want no match", tt.hostname)
			}
		})
	}
}

// Note: Integration tests with live mDNS discovery are a separate concern
// that requires network access and are not part of this suite.
