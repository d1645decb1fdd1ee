package store

import "fmt"

// Settings holds the store connection parameters taken from the
// SYNNAX_HOST / SYNNAX_PORT / SYNNAX_USERNAME / SYNNAX_PASSWORD /
// SYNNAX_SECURE environment variables (see internal/config).
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	Secure   bool
}

// BaseURL returns the HTTP(S) base URL for the store's management API.
func (s Settings) BaseURL() string {
	scheme := "http"
	if s.Secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, s.Host, s.Port)
}

// WebSocketURL returns the ws(s) base URL for the store's subscription
// stream.
func (s Settings) WebSocketURL() string {
	scheme := "ws"
	if s.Secure {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, s.Host, s.Port)
}
