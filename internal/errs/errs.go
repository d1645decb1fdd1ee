// Package errs defines the small closed set of error kinds shared across
// the bridge: Transport, Framing, Codec, SchemaMismatch, StoreValidation,
// and Config. Every boundary in this module wraps the underlying error in
// one of these before it crosses a package line, so callers can dispatch
// on Kind with errors.As instead of matching error strings.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an Error by how the supervisor must react to it.
type Kind int

const (
	// Transport covers socket connect-refused, reset, and idle timeout.
	// Always triggers reconnection at the session boundary.
	Transport Kind = iota
	// Framing covers length-prefix mismatches and truncated records.
	Framing
	// Codec covers malformed messages: unknown MSG_ID, invalid valve
	// identifier, telemetry count mismatch, bad handoff magic.
	Codec
	// SchemaMismatch covers a decoded message the channel map cannot
	// reconcile with its configured channels.
	SchemaMismatch
	// StoreValidation covers a write the store rejected, typically because
	// its timestamp is older than the writer's floor.
	StoreValidation
	// Config covers unreachable store at startup or a missing channel-map
	// file. Always fatal.
	Config
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case Framing:
		return "framing"
	case Codec:
		return "codec"
	case SchemaMismatch:
		return "schema_mismatch"
	case StoreValidation:
		return "store_validation"
	case Config:
		return "config"
	default:
		return "unknown"
	}
}

// Error is a Kind-tagged error. It wraps an underlying cause so
// errors.Is/errors.As and %w unwrapping both work normally.
type Error struct {
	Kind Kind
	Op   string // the operation that failed, e.g. "wire.Decode"
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the supervisor should reconnect and continue
// rather than treat the error as fatal. Config errors are the only kind
// that is never retryable.
func (e *Error) Retryable() bool {
	return e.Kind != Config
}

// New wraps err as a Kind-tagged Error attributed to op. If err is nil, New
// still returns a non-nil *Error carrying Kind alone.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is (or wraps) an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
