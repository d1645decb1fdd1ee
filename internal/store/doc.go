// Package store adapts this module to an external time-series store (the
// kind of SDK a system like Synnax exposes: channel create/retrieve, an
// appending writer, and an async subscription streamer). The store itself
// is explicitly out of scope; this package only speaks to one over HTTP
// (channel management, writer lifecycle) and WebSocket (the subscription
// stream), the same two transports the teacher's device server exposed on
// the other side of a connection.
package store
