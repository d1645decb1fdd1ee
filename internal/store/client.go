package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/masa-umich/limewire/internal/channelmap"
	"github.com/masa-umich/limewire/internal/errs"
)

// Client is the concrete Adapter implementation: an HTTP client for channel
// and writer management, plus a WebSocket dial (see subscribe.go) for the
// subscription stream.
type Client struct {
	settings Settings
	http     *http.Client
	retry    retryPolicy
	log      *zap.Logger
}

// NewClient builds a Client for the given store connection settings. log
// may be nil, in which case a no-op logger is used.
func NewClient(settings Settings, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		settings: settings,
		http:     &http.Client{Timeout: 10 * time.Second},
		retry:    defaultRetryPolicy(),
		log:      log,
	}
}

type createChannelRequest struct {
	Name                 string `json:"name"`
	DataType             string `json:"data_type"`
	IsIndex              bool   `json:"is_index"`
	Index                string `json:"index,omitempty"`
	RetrieveIfNameExists bool   `json:"retrieve_if_name_exists"`
}

func dataTypeFor(kind channelmap.Kind) string {
	switch kind {
	case channelmap.TIMESTAMP:
		return "timestamp"
	case channelmap.UINT8:
		return "uint8"
	default:
		return "float32"
	}
}

// EnsureChannels creates the index channel (TIMESTAMP, is_index=true) and
// every data channel in entry, asking the store to return the existing
// channel instead of erroring when a name is already taken.
func (c *Client) EnsureChannels(ctx context.Context, indexChannel string, entry channelmap.IndexEntry) error {
	const op = "store.Client.EnsureChannels"

	if err := c.createChannel(ctx, createChannelRequest{
		Name:                 indexChannel,
		DataType:             "timestamp",
		IsIndex:              true,
		RetrieveIfNameExists: true,
	}); err != nil {
		return errs.New(errs.Config, op, fmt.Errorf("creating index channel %s: %w", indexChannel, err))
	}

	if err := c.createChannel(ctx, createChannelRequest{
		Name:                 entry.WriteTimeChannel,
		DataType:             "timestamp",
		IsIndex:              true,
		RetrieveIfNameExists: true,
	}); err != nil {
		return errs.New(errs.Config, op, fmt.Errorf("creating write-time channel %s: %w", entry.WriteTimeChannel, err))
	}

	for _, ch := range entry.DataChannels {
		if err := c.createChannel(ctx, createChannelRequest{
			Name:                 ch.Name,
			DataType:             dataTypeFor(ch.Kind),
			Index:                indexChannel,
			RetrieveIfNameExists: true,
		}); err != nil {
			return errs.New(errs.Config, op, fmt.Errorf("creating data channel %s: %w", ch.Name, err))
		}
	}

	return nil
}

func (c *Client) createChannel(ctx context.Context, req createChannelRequest) error {
	return c.retry.do(ctx, func() error {
		return c.postJSON(ctx, "/api/v1/channels", req, nil)
	})
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.settings.BaseURL()+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.settings.Username, c.settings.Password)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("store returned %d", resp.StatusCode)
	}
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return errs.New(errs.StoreValidation, "store.Client.postJSON", fmt.Errorf("store rejected request: %d", resp.StatusCode))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("store returned %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
