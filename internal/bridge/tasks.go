package bridge

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/masa-umich/limewire/internal/avionics"
	"github.com/masa-umich/limewire/internal/channelmap"
	"github.com/masa-umich/limewire/internal/errs"
	"github.com/masa-umich/limewire/internal/storeframe"
	"github.com/masa-umich/limewire/internal/transport"
	"github.com/masa-umich/limewire/internal/wire"
)

// session holds everything the per-connection task group needs. It is
// created fresh by runSession for each FC connection and discarded when
// the session ends.
type session struct {
	sup    *Supervisor
	framer *transport.TCPFramer
}

func newFramer(conn net.Conn) *transport.TCPFramer {
	return transport.NewTCPFramer(conn)
}

// tcpReader repeatedly reads framed messages from the FC. ValveState
// messages are enqueued with receive time; Heartbeat is logged and
// discarded; anything else is a warning. An idle read longer than
// ReadIdleTimeout is surfaced as a Transport error to trigger reconnection.
func (s *session) tcpReader(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		type readResult struct {
			msg wire.Message
			err error
		}
		resultCh := make(chan readResult, 1)
		go func() {
			msg, err := s.framer.Receive()
			resultCh <- readResult{msg, err}
		}()

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.sup.cfg.ReadIdleTimeout):
			return errs.New(errs.Transport, "bridge.tcpReader", errors.New("read idle timeout"))
		case r := <-resultCh:
			if r.err != nil {
				if errors.Is(r.err, transport.ErrEndOfStream) {
					return errs.New(errs.Transport, "bridge.tcpReader", r.err)
				}
				if errs.Is(r.err, errs.Framing) {
					return errs.New(errs.Transport, "bridge.tcpReader", r.err)
				}
				if errs.Is(r.err, errs.Codec) {
					s.sup.log.Warn("unknown message on tcp session, treating as untrusted", zap.Error(r.err))
					return errs.New(errs.Transport, "bridge.tcpReader", r.err)
				}
				return r.err
			}

			now := time.Now()
			switch r.msg.(type) {
			case wire.ValveState:
				if err := s.sup.queue.push(ctx, QueueEntry{Msg: r.msg, RecvTime: now}); err != nil {
					return nil
				}
			case wire.Heartbeat:
				s.sup.state.recordHeartbeatAck(now)
				s.sup.log.Debug("heartbeat ack received")
			default:
				s.sup.log.Warn("unexpected message on tcp session", zap.Stringer("type", r.msg.Type()))
			}
		}
	}
}

// udpReader listens for board-broadcast telemetry and enqueues each
// Telemetry message with receive time. If OverwriteTimestamps is set, the
// message's own timestamp is replaced by the receive time first.
func (s *session) udpReader(ctx context.Context) error {
	addr, err := net.ResolveUDPAddr("udp", s.sup.cfg.TelemetryUDPAddr)
	if err != nil {
		return errs.New(errs.Config, "bridge.udpReader", err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return errs.New(errs.Transport, "bridge.udpReader", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	framer := transport.NewUDPFramer(conn, s.sup.log)
	for {
		msg, _, err := framer.Receive()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errs.New(errs.Transport, "bridge.udpReader", err)
		}

		telemetry, ok := msg.(wire.Telemetry)
		if !ok {
			s.sup.log.Warn("non-telemetry message on udp telemetry port", zap.Stringer("type", msg.Type()))
			continue
		}

		recvTime := time.Now()
		if s.sup.cfg.OverwriteTimestamps {
			telemetry.Timestamp = recvTime.UnixNano()
		}

		if err := s.sup.queue.push(ctx, QueueEntry{Msg: telemetry, RecvTime: recvTime}); err != nil {
			return nil
		}
	}
}

// writer drains the queue, builds a store frame for each entry, and writes
// it. A StoreValidation error closes and nulls the current writer handle
// and fires a clock-resync; the next message reopens the writer rooted at
// its own timestamp.
func (s *session) writer(ctx context.Context) error {
	var w interface {
		Write(ctx context.Context, f storeframe.Frame) error
		Close() error
	}
	defer func() {
		if w != nil {
			w.Close()
		}
	}()

	for {
		var entry QueueEntry
		select {
		case <-ctx.Done():
			return nil
		case entry = <-s.sup.queue.ch:
		}

		frame, kind, board, msgTS, err := buildFrame(entry, s.sup.channelMap)
		if err != nil {
			s.sup.log.Warn("dropping message that failed to map onto a store frame", zap.Error(err))
			continue
		}

		now := time.Now()
		frame["limewire_"+kind+"_latency"] = now.Sub(entry.RecvTime).Nanoseconds()

		if w == nil {
			opened, err := s.sup.store.OpenWriter(ctx, time.Unix(0, msgTS), s.sup.channelMap.AllChannelNames())
			if err != nil {
				s.sup.log.Error("failed to open store writer", zap.Error(err))
				continue
			}
			w = opened
		}

		if err := w.Write(ctx, frame); err != nil {
			if errs.Is(err, errs.StoreValidation) {
				s.sup.log.Warn("store rejected write, reopening writer", zap.Error(err), zap.String("board", board))
				w.Close()
				w = nil
				s.sup.resync.ClockResyncRequested("store validation failure")
				continue
			}
			return err
		}

		if s.sup.latency != nil {
			s.sup.latency.Record(now.UnixNano(), msgTS, now.UnixNano()-msgTS, board)
		}
	}
}

func buildFrame(entry QueueEntry, cm *channelmap.Map) (frame storeframe.Frame, kind, board string, msgTS int64, err error) {
	clock := storeframe.Clock(time.Now)
	switch msg := entry.Msg.(type) {
	case wire.Telemetry:
		f, err := storeframe.BuildTelemetry(msg, cm, clock)
		if err != nil {
			return nil, "", "", 0, err
		}
		return f, "telemetry", msg.Board.Name(), msg.Timestamp, nil
	case wire.ValveState:
		f := storeframe.BuildValveState(msg, clock)
		return f, "valve_state", msg.Valve.Board.Name(), msg.Timestamp, nil
	default:
		return nil, "", "", 0, errs.New(errs.SchemaMismatch, "bridge.buildFrame", errUnsupportedQueueEntry)
	}
}

var errUnsupportedQueueEntry = errors.New("queue entry is not a Telemetry or ValveState message")

// commandRelay subscribes to every store channel classified as a valve
// command and forwards each delivery, newest-value-wins, as a
// ValveCommand to the FC.
func (s *session) commandRelay(ctx context.Context) error {
	var channels []string
	for _, name := range s.sup.channelMap.AllChannelNames() {
		if channelmap.IsValveCommand(name) {
			channels = append(channels, name)
		}
	}
	if len(channels) == 0 {
		<-ctx.Done()
		return nil
	}

	sub, err := s.sup.store.Subscribe(ctx, channels)
	if err != nil {
		return errs.New(errs.Transport, "bridge.commandRelay", err)
	}
	defer sub.Close()

	for {
		frame, err := sub.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errs.New(errs.Transport, "bridge.commandRelay", err)
		}

		for _, name := range channels {
			raw, ok := frame[name]
			if !ok {
				continue
			}
			valve, cmdOK := valveCommandFromChannel(name, raw)
			if !cmdOK {
				continue
			}
			if err := s.framer.Send(valve); err != nil {
				return errs.New(errs.Transport, "bridge.commandRelay", err)
			}
			if s.sup.latency != nil {
				s.sup.latency.Record(time.Now().UnixNano(), time.Now().UnixNano(), 0, "valve_command")
			}
		}
	}
}

func valveCommandFromChannel(name string, raw any) (wire.ValveCommand, bool) {
	state, ok := coerceUint8(raw)
	if !ok {
		return wire.ValveCommand{}, false
	}
	valve, ok := valveFromChannelName(name)
	if !ok {
		return wire.ValveCommand{}, false
	}
	return wire.ValveCommand{Valve: valve, State: state != 0}, true
}

func valveFromChannelName(name string) (avionics.Valve, bool) {
	for _, b := range avionics.Boards() {
		for _, v := range avionics.Valves(b) {
			if v.CommandChannel() == name {
				return v, true
			}
		}
	}
	return avionics.Valve{}, false
}

func coerceUint8(raw any) (uint8, bool) {
	switch v := raw.(type) {
	case uint8:
		return v, true
	case float64:
		return uint8(v), true
	case int64:
		return uint8(v), true
	case []any:
		if len(v) == 0 {
			return 0, false
		}
		return coerceUint8(v[len(v)-1])
	default:
		return 0, false
	}
}

// handoffRelay subscribes to the distinguished handoff control channel and
// forwards a Handoff message whenever a value arrives. There is no
// endpoint-selection state machine downstream of this; see the "Open
// Questions resolved" section of DESIGN.md.
func (s *session) handoffRelay(ctx context.Context) error {
	sub, err := s.sup.store.Subscribe(ctx, []string{s.sup.cfg.HandoffChannel})
	if err != nil {
		return errs.New(errs.Transport, "bridge.handoffRelay", err)
	}
	defer sub.Close()

	for {
		frame, err := sub.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errs.New(errs.Transport, "bridge.handoffRelay", err)
		}

		raw, ok := frame[s.sup.cfg.HandoffChannel]
		if !ok {
			continue
		}
		signal, ok := coerceUint8(raw)
		if !ok {
			continue
		}

		msg := wire.Handoff{Signal: wire.HandoffSignal(signal)}
		if err := s.framer.Send(msg); err != nil {
			return errs.New(errs.Transport, "bridge.handoffRelay", err)
		}
	}
}

// heartbeat sends a Heartbeat every HeartbeatInterval and logs queue depth.
func (s *session) heartbeat(ctx context.Context) error {
	ticker := time.NewTicker(s.sup.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.framer.Send(wire.Heartbeat{}); err != nil {
				return errs.New(errs.Transport, "bridge.heartbeat", err)
			}
			s.sup.log.Debug("heartbeat sent", zap.Int("queue_depth", s.sup.queue.depth()))
		}
	}
}
