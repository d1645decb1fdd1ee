package transport

import (
	"net"
	"testing"
	"time"

	"github.com/masa-umich/limewire/internal/avionics"
	"github.com/masa-umich/limewire/internal/wire"
)

func newLoopbackUDPFramer(t *testing.T) (*UDPFramer, *net.UDPAddr) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewUDPFramer(conn, nil), conn.LocalAddr().(*net.UDPAddr)
}

func TestUDPFramerRoundTrip(t *testing.T) {
	server, serverAddr := newLoopbackUDPFramer(t)
	client, _ := newLoopbackUDPFramer(t)

	msg := wire.ValveCommand{Valve: avionics.Valve{Board: avionics.FC, Ordinal: 1}, State: true}
	if err := client.Send(msg, serverAddr); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	server.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	got, _, err := server.Receive()
	if err != nil {
		t.Fatalf("Receive() error: %v", err)
	}
	if got != msg {
		t.Fatalf("got %v, want %v", got, msg)
	}
}

func TestUDPFramerDropsLengthMismatch(t *testing.T) {
	server, serverAddr := newLoopbackUDPFramer(t)
	client, _ := newLoopbackUDPFramer(t)

	// Malformed datagram: declares 10 bytes but carries 5.
	bad := append([]byte{10}, []byte{1, 2, 3, 4, 5}...)
	if _, err := client.conn.WriteToUDP(bad, serverAddr); err != nil {
		t.Fatalf("WriteToUDP: %v", err)
	}

	good := wire.Heartbeat{}
	if err := client.Send(good, serverAddr); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	server.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	got, _, err := server.Receive()
	if err != nil {
		t.Fatalf("Receive() error: %v", err)
	}
	if got.Type() != wire.MsgHeartbeat {
		t.Fatalf("got %v, want the well-formed datagram after the malformed one was dropped", got)
	}
}
