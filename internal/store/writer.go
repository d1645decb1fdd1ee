package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/masa-umich/limewire/internal/errs"
	"github.com/masa-umich/limewire/internal/storeframe"
)

type openWriterRequest struct {
	Start            int64    `json:"start"`
	Channels         []string `json:"channels"`
	Authorities      []int    `json:"authorities"`
	EnableAutoCommit bool     `json:"enable_auto_commit"`
}

type openWriterResponse struct {
	WriterID string `json:"writer_id"`
}

type httpWriter struct {
	client   *Client
	writerID string
}

// OpenWriter creates a long-lived append handle rooted at start. Authority
// is always 0 (this bridge never takes command authority over a channel)
// and auto-commit is always requested.
func (c *Client) OpenWriter(ctx context.Context, start time.Time, channels []string) (Writer, error) {
	const op = "store.Client.OpenWriter"

	authorities := make([]int, len(channels))

	var resp openWriterResponse
	err := c.retry.do(ctx, func() error {
		return c.postJSON(ctx, "/api/v1/writers", openWriterRequest{
			Start:            start.UnixNano(),
			Channels:         channels,
			Authorities:      authorities,
			EnableAutoCommit: true,
		}, &resp)
	})
	if err != nil {
		return nil, errs.New(errs.Transport, op, err)
	}

	return &httpWriter{client: c, writerID: resp.WriterID}, nil
}

func (w *httpWriter) Write(ctx context.Context, frame storeframe.Frame) error {
	const op = "store.httpWriter.Write"

	err := w.client.postJSON(ctx, fmt.Sprintf("/api/v1/writers/%s/write", w.writerID), frame, nil)
	if err != nil {
		if errs.Is(err, errs.StoreValidation) {
			return err
		}
		return errs.New(errs.Transport, op, err)
	}
	return nil
}

func (w *httpWriter) Close() error {
	req, err := http.NewRequest(http.MethodDelete, w.client.settings.BaseURL()+"/api/v1/writers/"+w.writerID, nil)
	if err != nil {
		return fmt.Errorf("building close request: %w", err)
	}
	resp, err := w.client.http.Do(req)
	if err != nil {
		return fmt.Errorf("closing writer: %w", err)
	}
	defer resp.Body.Close()
	return nil
}
