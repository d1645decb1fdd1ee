package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/masa-umich/limewire/internal/latency"
	"github.com/masa-umich/limewire/internal/wire"
)

// Proxy interposes between one FC and any number of downstream clients. It
// never decodes for its own sake: every byte the FC sends, including the
// length prefix, is replayed to every connected client in the order it
// arrived, and every byte a client sends is replayed upstream.
type Proxy struct {
	cfg     Config
	log     *zap.Logger
	latency *latency.Recorder

	mu           sync.Mutex
	downstream   map[net.Conn]struct{}
	upstreamUp   bool
	upstreamConn net.Conn
	listener     net.Listener
}

// Addr reports the downstream listener's bound address, or nil if Run has
// not yet opened it. Useful in tests that bind to ":0".
func (p *Proxy) Addr() net.Addr {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listener == nil {
		return nil
	}
	return p.listener.Addr()
}

// New builds a Proxy. log may be nil; latencyRecorder may be nil to
// disable CSV output.
func New(cfg Config, latencyRecorder *latency.Recorder, log *zap.Logger) *Proxy {
	cfg = cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Proxy{
		cfg:        cfg,
		log:        log,
		latency:    latencyRecorder,
		downstream: make(map[net.Conn]struct{}),
	}
}

// Run listens for downstream clients and drives the upstream reconnect
// loop until ctx is cancelled.
func (p *Proxy) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", p.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("proxy: listen %s: %w", p.cfg.ListenAddr, err)
	}
	defer ln.Close()

	p.mu.Lock()
	p.listener = ln
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	go p.acceptDownstream(ctx, ln)

	for {
		if ctx.Err() != nil {
			return nil
		}

		conn, err := net.DialTimeout("tcp", p.cfg.UpstreamAddr, p.cfg.DialTimeout)
		if err != nil {
			p.log.Warn("upstream dial failed, backing off", zap.String("upstream_addr", p.cfg.UpstreamAddr), zap.Error(err))
			if !p.sleepBackoff(ctx) {
				return nil
			}
			continue
		}

		p.setUpstream(conn)
		p.log.Info("upstream connected", zap.String("upstream_addr", p.cfg.UpstreamAddr))

		p.runSession(ctx, conn)

		conn.Close()
		p.setUpstream(nil)
		p.closeAllDownstream()

		if ctx.Err() != nil {
			return nil
		}
		if !p.sleepBackoff(ctx) {
			return nil
		}
	}
}

func (p *Proxy) sleepBackoff(ctx context.Context) bool {
	select {
	case <-time.After(reconnectBackoff):
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *Proxy) setUpstream(conn net.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.upstreamConn = conn
	p.upstreamUp = conn != nil
}

func (p *Proxy) isUpstreamUp() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.upstreamUp
}

// runSession relays one upstream connection until it fails or ctx is
// cancelled.
func (p *Proxy) runSession(ctx context.Context, upstream net.Conn) {
	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		defer cancel()
		p.upstreamToDownstream(sessionCtx, upstream)
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		p.heartbeatUpstream(sessionCtx, upstream)
	}()
	go func() {
		defer wg.Done()
		<-sessionCtx.Done()
		upstream.Close()
	}()

	wg.Wait()
}

// upstreamToDownstream reads every whole frame the FC sends, records
// timing for Telemetry and ValveState messages, and replays the raw frame
// to every currently connected downstream client.
func (p *Proxy) upstreamToDownstream(ctx context.Context, upstream net.Conn) {
	for {
		raw, msg, err := readRawFrame(upstream)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				p.log.Warn("upstream read failed", zap.Error(err))
			}
			return
		}

		if p.latency != nil && msg != nil {
			p.recordTiming(msg)
		}

		p.broadcast(raw)
	}
}

func (p *Proxy) recordTiming(msg wire.Message) {
	now := time.Now().UnixNano()
	switch m := msg.(type) {
	case wire.Telemetry:
		p.latency.Record(now, m.Timestamp, now-m.Timestamp, m.Board.Name())
	case wire.ValveState:
		p.latency.Record(now, m.Timestamp, now-m.Timestamp, m.Valve.Board.Name())
	}
}

func (p *Proxy) broadcast(raw []byte) {
	p.mu.Lock()
	conns := make([]net.Conn, 0, len(p.downstream))
	for c := range p.downstream {
		conns = append(conns, c)
	}
	p.mu.Unlock()

	for _, c := range conns {
		if _, err := c.Write(raw); err != nil {
			p.log.Warn("dropping downstream client after write failure", zap.Error(err))
			p.removeDownstream(c)
		}
	}
}

func (p *Proxy) heartbeatUpstream(ctx context.Context, upstream net.Conn) {
	ticker := time.NewTicker(p.cfg.HeartbeatInterval)
	defer ticker.Stop()

	hb := wire.Heartbeat{}.Encode()
	frame := append([]byte{byte(len(hb))}, hb...)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := upstream.Write(frame); err != nil {
				p.log.Warn("upstream heartbeat failed", zap.Error(err))
				return
			}
		}
	}
}

// acceptDownstream accepts clients for as long as ctx is live. A client
// connecting before the upstream link is up is refused immediately.
func (p *Proxy) acceptDownstream(ctx context.Context, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.log.Warn("downstream accept failed", zap.Error(err))
			continue
		}

		if !p.isUpstreamUp() {
			p.log.Info("refusing downstream client: upstream not connected", zap.Stringer("remote_addr", conn.RemoteAddr()))
			conn.Close()
			continue
		}

		p.addDownstream(conn)
		go p.downstreamToUpstream(ctx, conn)
	}
}

func (p *Proxy) addDownstream(c net.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.downstream[c] = struct{}{}
}

func (p *Proxy) removeDownstream(c net.Conn) {
	p.mu.Lock()
	delete(p.downstream, c)
	p.mu.Unlock()
	c.Close()
}

func (p *Proxy) closeAllDownstream() {
	p.mu.Lock()
	conns := make([]net.Conn, 0, len(p.downstream))
	for c := range p.downstream {
		conns = append(conns, c)
	}
	p.downstream = make(map[net.Conn]struct{})
	p.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}

// downstreamToUpstream relays one client's bytes upstream verbatim until
// it disconnects or the upstream connection is gone.
func (p *Proxy) downstreamToUpstream(ctx context.Context, client net.Conn) {
	defer p.removeDownstream(client)

	for {
		raw, _, err := readRawFrame(client)
		if err != nil {
			return
		}

		p.mu.Lock()
		up := p.upstreamConn
		p.mu.Unlock()
		if up == nil {
			return
		}
		if _, err := up.Write(raw); err != nil {
			return
		}
	}
}
