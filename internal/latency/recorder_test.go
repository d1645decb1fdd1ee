package latency

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latency.csv")

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := r.Record(100, 90, 10, "fc"); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	r2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen Open() error: %v", err)
	}
	if err := r2.Record(200, 150, 50, "bb1"); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := r2.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (header + 2 data rows), rows=%v", len(rows), rows)
	}
	if rows[0][0] != "now_ns" {
		t.Errorf("header row = %v, want now_ns first", rows[0])
	}
}
