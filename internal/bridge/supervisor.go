package bridge

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/masa-umich/limewire/internal/channelmap"
	"github.com/masa-umich/limewire/internal/errs"
	"github.com/masa-umich/limewire/internal/latency"
	"github.com/masa-umich/limewire/internal/store"
)

// Supervisor is Limewire: it owns exactly one FC session at a time and
// reconnects whenever that session ends in a transport failure.
type Supervisor struct {
	cfg         Config
	channelMap  *channelmap.Map
	store       store.Adapter
	resync      ResyncNotifier
	log         *zap.Logger
	latency     *latency.Recorder // optional, nil disables CSV recording
	queue       *queue
	state       sessionState
}

// New builds a Supervisor. log and resync may be nil; latencyRecorder may
// be nil to disable CSV output.
func New(cfg Config, cm *channelmap.Map, adapter store.Adapter, resync ResyncNotifier, latencyRecorder *latency.Recorder, log *zap.Logger) *Supervisor {
	cfg = cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	if resync == nil {
		resync = LogOnlyResyncNotifier{Log: log}
	}
	return &Supervisor{
		cfg:        cfg,
		channelMap: cm,
		store:      adapter,
		resync:     resync,
		log:        log,
		latency:    latencyRecorder,
		queue:      newQueue(cfg.QueueCapacity),
	}
}

// Snapshot reports the supervisor's current state for a dashboard.
func (s *Supervisor) Snapshot() Snapshot {
	return s.state.snapshot(s.queue.depth(), s.queue.capacity())
}

// Run drives the disconnected -> connecting -> connected state machine
// until ctx is cancelled. It never returns an error for a transport
// failure: those only trigger reconnection. It returns when ctx is done.
func (s *Supervisor) Run(ctx context.Context) error {
	first := true
	for {
		if ctx.Err() != nil {
			s.state.setState(Disconnected)
			return nil
		}

		s.state.setState(Connecting)
		conn, err := net.DialTimeout("tcp", s.cfg.FCAddress, s.cfg.DialTimeout)
		if err != nil {
			s.log.Warn("dial failed, backing off", zap.String("fc_address", s.cfg.FCAddress), zap.Error(err))
			if !s.sleepBackoff(ctx) {
				return nil
			}
			continue
		}

		if !first {
			s.state.incrementReconnects()
		}
		first = false

		s.state.setState(Connected)
		s.log.Info("fc session established", zap.String("fc_address", s.cfg.FCAddress))

		err = s.runSession(ctx, conn)
		conn.Close()
		s.state.setState(Disconnected)

		if ctx.Err() != nil {
			return nil
		}

		if err != nil {
			s.log.Warn("session ended, reconnecting", zap.Error(err))
		}
		if !s.sleepBackoff(ctx) {
			return nil
		}
	}
}

func (s *Supervisor) sleepBackoff(ctx context.Context) bool {
	select {
	case <-time.After(DefaultReconnectBackoff):
		return true
	case <-ctx.Done():
		return false
	}
}

// runSession spawns the per-session task group and waits for the first
// failure or ctx cancellation. Any task ending with a Transport error (or
// any other error) cancels every sibling; ctx cancellation itself is not
// reported as an error.
func (s *Supervisor) runSession(ctx context.Context, conn net.Conn) error {
	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	framer := newFramer(conn)
	defer framer.Close()

	sess := &session{
		sup:    s,
		framer: framer,
	}

	g, gctx := errgroup.WithContext(sessionCtx)
	g.Go(func() error { return sess.tcpReader(gctx) })
	g.Go(func() error { return sess.udpReader(gctx) })
	g.Go(func() error { return sess.writer(gctx) })
	g.Go(func() error { return sess.commandRelay(gctx) })
	g.Go(func() error { return sess.heartbeat(gctx) })
	if s.cfg.HandoffChannel != "" {
		g.Go(func() error { return sess.handoffRelay(gctx) })
	}

	err := g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	if err != nil && !errs.Is(err, errs.Transport) {
		s.log.Error("session task failed with unexpected error", zap.Error(err))
	}
	return err
}
