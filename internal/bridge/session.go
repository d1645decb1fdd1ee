package bridge

import (
	"sync"
	"time"
)

// State is the supervisor's top-level connection state.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Snapshot is a point-in-time read of the supervisor's session state,
// cheap enough to poll from a dashboard.
type Snapshot struct {
	State            State
	QueueDepth       int
	QueueCapacity    int
	LastHeartbeatAck time.Time
	ReconnectCount   int
}

// sessionState holds everything owned exclusively by the supervisor's own
// goroutine; no other component mutates it. A mutex guards reads from the
// dashboard, which runs on its own goroutine.
type sessionState struct {
	mu               sync.Mutex
	state            State
	lastHeartbeatAck time.Time
	reconnectCount   int
}

func (s *sessionState) setState(v State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = v
}

func (s *sessionState) recordHeartbeatAck(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHeartbeatAck = t
}

func (s *sessionState) incrementReconnects() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconnectCount++
}

func (s *sessionState) snapshot(queueDepth, queueCapacity int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:            s.state,
		QueueDepth:       queueDepth,
		QueueCapacity:    queueCapacity,
		LastHeartbeatAck: s.lastHeartbeatAck,
		ReconnectCount:   s.reconnectCount,
	}
}
