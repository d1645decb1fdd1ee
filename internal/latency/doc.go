// Package latency implements the append-only CSV sink shared by the proxy
// and, optionally, a diagnostic run of the bridge: one row per telemetry or
// valve-state observation, columns now_ns, msg_ns, diff_ns, board.
package latency
