// Package discovery provides optional mDNS-based discovery of a flight
// computer's control-plane endpoint.
//
// Limewire dials a fixed default address by default (spec.md's default
// flight-computer address); this package is an opt-in enrichment for
// operators who pass --discover instead of a fixed address, and
// browses for the "_limewire-fc._tcp" service type.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for service advertisements from flight computers
//  3. Collects endpoint information (hostname, IP, port, TXT metadata)
//  4. Returns a list of discovered endpoints after the timeout period,
//     or the first one seen via WaitForFirst
//
// # Usage Example
//
//	endpoints, err := discovery.ScanForEndpoints(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, ep := range endpoints {
//	    fmt.Printf("Found: %s\n", ep)
//	}
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - The flight computer must be on the same local network segment
//   - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery
