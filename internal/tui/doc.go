// Package tui implements an optional, read-only operator dashboard for the
// bridge process. It polls bridge.Supervisor.Snapshot and renders session
// state, queue depth, last heartbeat ack, and reconnect count; it never
// issues commands, so it cannot reintroduce the operator GUI the bridge
// itself stays out of.
//
// The dashboard is gated behind --tui and degrades to plain logging when
// stdout is not a terminal, via IsTerminal.
package tui
