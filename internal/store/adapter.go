package store

import (
	"context"
	"time"

	"github.com/masa-umich/limewire/internal/channelmap"
	"github.com/masa-umich/limewire/internal/storeframe"
)

// Adapter is the store surface the bridge depends on. Client is the real
// HTTP/WebSocket implementation; tests substitute a fake.
type Adapter interface {
	// EnsureChannels creates any channel in entry that does not already
	// exist, rooted at the given index channel name. Existing channels are
	// left untouched (retrieve-if-exists semantics).
	EnsureChannels(ctx context.Context, indexChannel string, entry channelmap.IndexEntry) error

	// OpenWriter creates a long-lived append handle rooted at start, with
	// authority 0 (never take command authority) and auto-commit enabled.
	// It does not create channels: a named channel that does not already
	// exist is not created here; EnsureChannels is what creates channels.
	OpenWriter(ctx context.Context, start time.Time, channels []string) (Writer, error)

	// Subscribe opens a restartable stream of frames for the given
	// channels. The stream is finite only when Close is called.
	Subscribe(ctx context.Context, channels []string) (Subscription, error)
}

// Writer appends rows to the store. A StoreValidation error from Write
// means the caller must Close this writer and open a new one with a later
// start timestamp.
type Writer interface {
	Write(ctx context.Context, frame storeframe.Frame) error
	Close() error
}

// Subscription is a restartable sequence of frames delivered for a set of
// subscribed channels.
type Subscription interface {
	Next(ctx context.Context) (storeframe.Frame, error)
	Close() error
}
