package transport

import (
	"errors"
	"net"
	"testing"

	"github.com/masa-umich/limewire/internal/wire"
)

func TestTCPFramerRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	clientFramer := NewTCPFramer(client)
	serverFramer := NewTCPFramer(server)

	msg := wire.Heartbeat{}

	errCh := make(chan error, 1)
	go func() { errCh <- clientFramer.Send(msg) }()

	got, err := serverFramer.Receive()
	if err != nil {
		t.Fatalf("Receive() error: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if got.Type() != wire.MsgHeartbeat {
		t.Fatalf("got %v, want Heartbeat", got)
	}
}

func TestTCPFramerEndOfStream(t *testing.T) {
	client, server := net.Pipe()
	serverFramer := NewTCPFramer(server)

	go client.Close()

	_, err := serverFramer.Receive()
	if !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("Receive() error = %v, want ErrEndOfStream", err)
	}
}
