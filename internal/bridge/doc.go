// Package bridge implements Limewire, the reconnecting supervisor that
// owns one flight-computer session: it dials the FC, runs the TCP reader,
// UDP reader, writer, command-relay, optional handoff-relay, and heartbeat
// tasks as a structured-concurrency group, and reconnects on any transport
// failure.
package bridge
