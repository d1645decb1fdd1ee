package latency

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
)

var header = []string{"now_ns", "msg_ns", "diff_ns", "board"}

// Recorder appends one row per observation to a CSV file, writing the
// header first if the file is new or empty. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
}

// Open opens (or creates) path for append. If the file is empty, a header
// row is written before any data.
func Open(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("latency: opening %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("latency: stat %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("latency: writing header: %w", err)
		}
		w.Flush()
	}

	return &Recorder{file: f, w: w}, nil
}

// Record appends one row. nowNS and msgNS are nanoseconds since epoch;
// diffNS is nowNS-msgNS, not recomputed, so callers can record negative
// diffs they want to flag rather than silently clamp them.
func (r *Recorder) Record(nowNS, msgNS, diffNS int64, board string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := []string{
		strconv.FormatInt(nowNS, 10),
		strconv.FormatInt(msgNS, 10),
		strconv.FormatInt(diffNS, 10),
		board,
	}
	if err := r.w.Write(row); err != nil {
		return fmt.Errorf("latency: writing row: %w", err)
	}
	r.w.Flush()
	return r.w.Error()
}

// Close flushes and closes the underlying file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w.Flush()
	return r.file.Close()
}
