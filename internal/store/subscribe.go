package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/masa-umich/limewire/internal/errs"
	"github.com/masa-umich/limewire/internal/storeframe"
)

// wsSubscription is a live frame stream over a WebSocket connection. This
// is the real transport a store like Synnax uses for pushing subscription
// updates to a client SDK; modeling it this way lets the command relay
// depend on an ordinary Go channel-of-frames instead of store internals.
type wsSubscription struct {
	conn *websocket.Conn
}

// Subscribe dials the store's subscription endpoint for the given
// channels. The returned Subscription is restartable: callers reconnect by
// calling Subscribe again after Close.
func (c *Client) Subscribe(ctx context.Context, channels []string) (Subscription, error) {
	const op = "store.Client.Subscribe"

	u := c.settings.WebSocketURL() + "/api/v1/subscribe?channels=" + url.QueryEscape(strings.Join(channels, ","))

	dialer := websocket.Dialer{}
	conn, _, err := dialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, errs.New(errs.Transport, op, fmt.Errorf("dialing subscription stream: %w", err))
	}

	return &wsSubscription{conn: conn}, nil
}

// Next blocks for the next frame. A closed or reset connection surfaces as
// a Transport error so the caller's task can trigger reconnection.
func (s *wsSubscription) Next(ctx context.Context) (storeframe.Frame, error) {
	const op = "store.wsSubscription.Next"

	type result struct {
		frame storeframe.Frame
		err   error
	}
	done := make(chan result, 1)

	go func() {
		var frame storeframe.Frame
		err := s.conn.ReadJSON(&frame)
		done <- result{frame: frame, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, errs.New(errs.Transport, op, r.err)
		}
		return r.frame, nil
	}
}

func (s *wsSubscription) Close() error {
	return s.conn.Close()
}
