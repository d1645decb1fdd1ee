package eventlog

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Receiver listens for firmware event-log datagrams, parses each into a
// Record, fans it out to any subscribed sinks, and appends it to a
// rolling log file.
type Receiver struct {
	conn *net.UDPConn
	log  *zap.Logger
	file *os.File

	mu   sync.Mutex
	subs []chan<- Record
}

// Listen binds addr and opens logPath for append (creating it if
// missing). logPath may be empty to disable the file sink.
func Listen(addr, logPath string, log *zap.Logger) (*Receiver, error) {
	if log == nil {
		log = zap.NewNop()
	}

	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("eventlog: resolve %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("eventlog: listen %s: %w", addr, err)
	}

	var file *os.File
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("eventlog: open log file %s: %w", logPath, err)
		}
		file = f
	}

	return &Receiver{conn: conn, log: log, file: file}, nil
}

// Subscribe registers ch to receive every future Record. ch should be
// buffered; a full channel has its delivery dropped with a warning rather
// than blocking the receive loop.
func (r *Receiver) Subscribe(ch chan<- Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, ch)
}

// Close releases the socket and log file.
func (r *Receiver) Close() error {
	err := r.conn.Close()
	if r.file != nil {
		if ferr := r.file.Close(); err == nil {
			err = ferr
		}
	}
	return err
}

// Run reads datagrams until ctx is cancelled or the socket errors.
func (r *Receiver) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		r.conn.Close()
	}()

	buf := make([]byte, 4096)
	for {
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("eventlog: read: %w", err)
		}

		if !utf8.Valid(buf[:n]) {
			r.log.Warn("dropping event-log datagram: not valid utf-8")
			continue
		}

		rec := Parse(string(buf[:n]))
		r.handle(rec)
	}
}

func (r *Receiver) handle(rec Record) {
	if r.file != nil {
		if _, err := r.file.WriteString(formatLine(rec) + "\n"); err != nil {
			r.log.Warn("failed to append event-log record", zap.Error(err))
		}
	}

	r.mu.Lock()
	subs := make([]chan<- Record, len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- rec:
		default:
			r.log.Warn("dropping event-log record: sink channel full")
		}
	}
}

func formatLine(rec Record) string {
	ts := "-"
	if rec.Timestamp != nil {
		ts = rec.Timestamp.Format(timestampLayout)
	}
	code := "-"
	if rec.StatusCode != nil {
		code = fmt.Sprintf("%04d", *rec.StatusCode)
	}
	return fmt.Sprintf("%s %s %s", ts, code, rec.Message)
}
