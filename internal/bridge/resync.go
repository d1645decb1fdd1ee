package bridge

import "go.uber.org/zap"

// ResyncNotifier is invoked when the store rejects a write because its
// timestamp is behind the writer's floor. Clock synchronization itself is
// out of scope; this hook exists so a future NTP-resync sender can be
// wired in without touching the supervisor.
type ResyncNotifier interface {
	ClockResyncRequested(reason string)
}

// LogOnlyResyncNotifier is the default ResyncNotifier: it only logs.
type LogOnlyResyncNotifier struct {
	Log *zap.Logger
}

func (n LogOnlyResyncNotifier) ClockResyncRequested(reason string) {
	log := n.Log
	if log == nil {
		log = zap.NewNop()
	}
	log.Warn("clock resync requested", zap.String("reason", reason))
}
