package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/masa-umich/limewire/internal/channelmap"
	"github.com/masa-umich/limewire/internal/errs"
	"github.com/masa-umich/limewire/internal/storeframe"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse test server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse test server port: %v", err)
	}

	c := NewClient(Settings{Host: u.Hostname(), Port: port}, nil)
	c.retry = retryPolicy{maxAttempts: 1, baseDelay: time.Millisecond, maxDelay: time.Millisecond}
	return c
}

func TestEnsureChannelsCreatesEveryChannel(t *testing.T) {
	var created []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/channels", func(w http.ResponseWriter, r *http.Request) {
		var req createChannelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		created = append(created, req.Name)
		w.WriteHeader(http.StatusOK)
	})

	c := newTestClient(t, mux)
	entry := channelmap.IndexEntry{
		DataChannels: []channelmap.Channel{
			{Name: "fc_pt_1", Kind: channelmap.FLOAT32},
			{Name: "fc_vlv_1", Kind: channelmap.UINT8},
		},
		WriteTimeChannel: "fc_limewire_write_time",
	}

	if err := c.EnsureChannels(context.Background(), "fc_timestamp", entry); err != nil {
		t.Fatalf("EnsureChannels() error: %v", err)
	}

	want := []string{"fc_timestamp", "fc_limewire_write_time", "fc_pt_1", "fc_vlv_1"}
	if len(created) != len(want) {
		t.Fatalf("created %v, want %v", created, want)
	}
}

func TestOpenWriterAndWrite(t *testing.T) {
	var wroteFrame storeframe.Frame
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/writers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openWriterResponse{WriterID: "w-1"})
	})
	mux.HandleFunc("/api/v1/writers/w-1/write", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&wroteFrame); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	c := newTestClient(t, mux)
	writer, err := c.OpenWriter(context.Background(), time.Now(), []string{"fc_timestamp"})
	if err != nil {
		t.Fatalf("OpenWriter() error: %v", err)
	}

	frame := storeframe.Frame{"fc_timestamp": int64(123)}
	if err := writer.Write(context.Background(), frame); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if wroteFrame["fc_timestamp"] != float64(123) { // JSON numbers decode as float64
		t.Errorf("server received %v, want fc_timestamp=123", wroteFrame)
	}
}

func TestWriteValidationFailureIsStoreValidation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/writers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openWriterResponse{WriterID: "w-1"})
	})
	mux.HandleFunc("/api/v1/writers/w-1/write", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	c := newTestClient(t, mux)
	writer, err := c.OpenWriter(context.Background(), time.Now(), []string{"fc_timestamp"})
	if err != nil {
		t.Fatalf("OpenWriter() error: %v", err)
	}

	err = writer.Write(context.Background(), storeframe.Frame{"fc_timestamp": int64(1)})
	if !errs.Is(err, errs.StoreValidation) {
		t.Fatalf("Write() error = %v, want StoreValidation", err)
	}
}
