// Package simulator drives the wire protocol from the flight-computer
// side, so Limewire's bridge, proxy, and command-relay logic can be
// exercised in tests without real avionics hardware.
package simulator
