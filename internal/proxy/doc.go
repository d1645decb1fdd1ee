// Package proxy implements a transparent interposer between the
// flight-computer TCP link and Limewire: it fans the FC's byte stream out
// to any number of downstream clients unchanged, relays downstream writes
// back upstream, and records per-message latency to a CSV sink.
package proxy
