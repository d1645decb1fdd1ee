// Package transport implements the two length-prefixed framing disciplines
// the wire protocol rides on: a TCP framer over an ordered byte stream and
// a UDP framer over datagrams. Both use a single length byte ahead of the
// message bytes (MSG_ID included).
package transport
