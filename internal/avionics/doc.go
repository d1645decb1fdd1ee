// Package avionics defines the fixed set of flight-computer boards, valves,
// and device commands that the rest of this module addresses by value.
//
// Nothing here touches the network or the store. It exists so that wire
// encoding, channel mapping, and the bridge supervisor all agree on the same
// small set of identifiers instead of re-deriving them ad hoc.
package avionics
