package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/masa-umich/limewire/internal/avionics"
	"github.com/masa-umich/limewire/internal/transport"
	"github.com/masa-umich/limewire/internal/wire"
)

// cannedResponses holds the ASCII replies the simulator gives for
// DeviceCommands it recognizes. A command missing from this map produces
// an empty response, matching real unrecognized-command behavior.
var cannedResponses = map[avionics.DeviceCommand]string{
	avionics.CommandReset:             "ok",
	avionics.CommandClearFlash:        "flash cleared",
	avionics.CommandFlashSpace:        "4096 bytes free",
	avionics.CommandFirmwareBuildInfo: "build sim-0",
}

// Simulator drives the wire protocol from the FC's side of the link: it
// accepts a TCP session, emits telemetry at a fixed rate, and answers
// valve and device commands the way real hardware would.
type Simulator struct {
	cfg     Config
	log     *zap.Logger
	udpConn *net.UDPConn
}

// New builds a Simulator. log may be nil.
func New(cfg Config, log *zap.Logger) *Simulator {
	cfg = cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{cfg: cfg, log: log}
}

// Run accepts TCP sessions until ctx is cancelled, launching a fresh
// telemetry/command loop per connection; sessions run concurrently.
func (s *Simulator) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("simulator: listen %s: %w", s.cfg.ListenAddr, err)
	}
	defer ln.Close()

	if s.cfg.TelemetryUDPTarget != "" {
		addr, err := net.ResolveUDPAddr("udp", s.cfg.TelemetryUDPTarget)
		if err != nil {
			return fmt.Errorf("simulator: resolve udp target %s: %w", s.cfg.TelemetryUDPTarget, err)
		}
		conn, err := net.DialUDP("udp", nil, addr)
		if err != nil {
			return fmt.Errorf("simulator: dial udp target %s: %w", s.cfg.TelemetryUDPTarget, err)
		}
		s.udpConn = conn
		defer conn.Close()
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.log.Warn("accept failed", zap.Error(err))
			continue
		}
		go s.handleConnection(ctx, conn)
	}
}

func (s *Simulator) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	framer := transport.NewTCPFramer(conn)

	go func() {
		defer cancel()
		s.telemetryLoop(connCtx, framer)
	}()

	s.commandLoop(connCtx, framer)
}

// telemetryLoop emits Telemetry for every board each tick. Every
// ZeroTimestampEvery'th iteration, every board's message carries a zero
// timestamp to exercise the store's validation path.
func (s *Simulator) telemetryLoop(ctx context.Context, framer *transport.TCPFramer) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	var iteration int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			iteration++
			zeroTS := s.cfg.ZeroTimestampEvery > 0 && iteration%s.cfg.ZeroTimestampEvery == 0
			for _, board := range avionics.Boards() {
				msg := s.randomTelemetry(board, zeroTS)
				if err := framer.Send(msg); err != nil {
					s.log.Warn("telemetry send failed", zap.Error(err))
					return
				}
				s.broadcastUDP(msg)
			}
		}
	}
}

func (s *Simulator) randomTelemetry(board avionics.Board, zeroTimestamp bool) wire.Telemetry {
	ts := time.Now().UnixNano()
	if zeroTimestamp {
		ts = 0
	}
	values := make([]float32, board.NumValues())
	for i := range values {
		values[i] = rand.Float32() * 100
	}
	return wire.Telemetry{Board: board, Timestamp: ts, Values: values}
}

func (s *Simulator) broadcastUDP(msg wire.Telemetry) {
	if s.udpConn == nil {
		return
	}
	payload := msg.Encode()
	frame := make([]byte, 1+len(payload))
	frame[0] = byte(len(payload))
	copy(frame[1:], payload)
	if _, err := s.udpConn.Write(frame); err != nil {
		s.log.Warn("udp telemetry broadcast failed", zap.Error(err))
	}
}

// commandLoop reads incoming messages and answers them the way real
// hardware would: ValveCommand echoes a ValveState, DeviceCommand replies
// with an ack, Heartbeat is consumed silently, and anything else is logged.
func (s *Simulator) commandLoop(ctx context.Context, framer *transport.TCPFramer) {
	for {
		if ctx.Err() != nil {
			return
		}
		msg, err := framer.Receive()
		if err != nil {
			if ctx.Err() == nil {
				s.log.Debug("client connection ended", zap.Error(err))
			}
			return
		}

		switch m := msg.(type) {
		case wire.ValveCommand:
			reply := wire.ValveState{Valve: m.Valve, State: m.State, Timestamp: time.Now().UnixNano()}
			if err := framer.Send(reply); err != nil {
				s.log.Warn("valve state reply failed", zap.Error(err))
				return
			}
		case wire.DeviceCommand:
			ack := wire.DeviceCommandAck{Board: m.Board, Command: m.Command, Response: cannedResponses[m.Command]}
			if err := framer.Send(ack); err != nil {
				s.log.Warn("device command ack failed", zap.Error(err))
				return
			}
		case wire.Heartbeat:
			// consumed silently; its arrival alone resets any idle timer on
			// the peer.
		default:
			s.log.Warn("unhandled message type from client", zap.Stringer("type", msg.Type()))
		}
	}
}
