package bridge

import (
	"context"
	"time"

	"github.com/masa-umich/limewire/internal/wire"
)

// QueueEntry pairs a decoded message with the wall-clock time it was
// received, for latency attribution downstream.
type QueueEntry struct {
	Msg      wire.Message
	RecvTime time.Time
}

// queue is the bounded, multi-producer single-consumer channel shared by
// the TCP and UDP readers (producers) and the writer task (consumer).
// Enqueue suspends when full, which is how back-pressure reaches the
// socket read loops and eventually the kernel buffers.
type queue struct {
	ch chan QueueEntry
}

func newQueue(capacity int) *queue {
	return &queue{ch: make(chan QueueEntry, capacity)}
}

// push enqueues, suspending when the queue is full. This is the bridge's
// only back-pressure mechanism: a full queue blocks the reader loop that's
// feeding it, which in turn blocks on the socket, which is acceptable per
// the back-pressure model.
func (q *queue) push(ctx context.Context, entry QueueEntry) error {
	select {
	case q.ch <- entry:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *queue) depth() int {
	return len(q.ch)
}

func (q *queue) capacity() int {
	return cap(q.ch)
}
