package proxy

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/masa-umich/limewire/internal/avionics"
	"github.com/masa-umich/limewire/internal/latency"
	"github.com/masa-umich/limewire/internal/transport"
	"github.com/masa-umich/limewire/internal/wire"
)

func waitForAddr(t *testing.T, p *Proxy) net.Addr {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if addr := p.Addr(); addr != nil {
			return addr
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("proxy never bound its listener")
	return nil
}

func TestProxyFansOutToMultipleDownstreamClients(t *testing.T) {
	fcListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("fc listen: %v", err)
	}
	defer fcListener.Close()

	lat, err := latency.Open(t.TempDir() + "/latency.csv")
	if err != nil {
		t.Fatalf("latency.Open: %v", err)
	}
	defer lat.Close()

	p := New(Config{
		ListenAddr:        "127.0.0.1:0",
		UpstreamAddr:      fcListener.Addr().String(),
		DialTimeout:       time.Second,
		HeartbeatInterval: time.Hour, // don't interleave heartbeats into the test
	}, lat, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go p.Run(ctx)

	fcConnCh := make(chan net.Conn, 1)
	go func() {
		conn, err := fcListener.Accept()
		if err == nil {
			fcConnCh <- conn
		}
	}()

	waitForAddr(t, p)

	fcConn := <-fcConnCh
	defer fcConn.Close()

	client1, err := net.Dial("tcp", p.Addr().String())
	if err != nil {
		t.Fatalf("dial client1: %v", err)
	}
	defer client1.Close()
	client2, err := net.Dial("tcp", p.Addr().String())
	if err != nil {
		t.Fatalf("dial client2: %v", err)
	}
	defer client2.Close()

	time.Sleep(50 * time.Millisecond) // let acceptDownstream register both clients

	valve := avionics.Valve{Board: avionics.FC, Ordinal: 1}
	msg := wire.ValveState{Valve: valve, State: true, Timestamp: 123}
	framer := transport.NewTCPFramer(fcConn)
	if err := framer.Send(msg); err != nil {
		t.Fatalf("send from fake fc: %v", err)
	}

	raw1, decoded1, err := readRawFrame(client1)
	if err != nil {
		t.Fatalf("client1 read: %v", err)
	}
	raw2, decoded2, err := readRawFrame(client2)
	if err != nil {
		t.Fatalf("client2 read: %v", err)
	}

	if string(raw1) != string(raw2) {
		t.Errorf("client1 and client2 received different bytes: %v vs %v", raw1, raw2)
	}
	if decoded1 == nil || decoded1.(wire.ValveState).Valve != valve {
		t.Errorf("client1 decoded message = %+v, want ValveState for %s", decoded1, valve)
	}
	if decoded2 == nil || decoded2.(wire.ValveState).Valve != valve {
		t.Errorf("client2 decoded message = %+v, want ValveState for %s", decoded2, valve)
	}
}

func TestProxyRefusesDownstreamBeforeUpstream(t *testing.T) {
	p := New(Config{
		ListenAddr:        "127.0.0.1:0",
		UpstreamAddr:      "127.0.0.1:1", // nothing listens here; dial will fail/time out
		DialTimeout:       50 * time.Millisecond,
		HeartbeatInterval: time.Hour,
	}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go p.Run(ctx)
	waitForAddr(t, p)

	conn, err := net.Dial("tcp", p.Addr().String())
	if err != nil {
		t.Fatalf("dial proxy: %v", err)
	}
	defer conn.Close()

	buf := make([]byte, 1)
	conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := conn.Read(buf); err == nil {
		t.Error("expected the connection to be closed by the proxy while upstream is down")
	}
}
