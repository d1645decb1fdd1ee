package eventlog

import (
	"testing"
	"time"
)

func TestParseFullLine(t *testing.T) {
	rec := Parse("2026-07-30T14:05:09.123456Z 4002 igniter continuity lost")

	if rec.Timestamp == nil {
		t.Fatal("Timestamp not parsed")
	}
	want := time.Date(2026, 7, 30, 14, 5, 9, 123456000, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", rec.Timestamp, want)
	}
	if rec.StatusCode == nil || *rec.StatusCode != 4002 {
		t.Fatalf("StatusCode = %v, want 4002", rec.StatusCode)
	}
	if rec.Board == nil || int(*rec.Board) != 4 {
		t.Fatalf("Board = %v, want 4", rec.Board)
	}
	if rec.Message != "igniter continuity lost" {
		t.Errorf("Message = %q, want %q", rec.Message, "igniter continuity lost")
	}
}

func TestParseMissingTimestamp(t *testing.T) {
	rec := Parse("4002 igniter continuity lost")
	if rec.Timestamp != nil {
		t.Error("Timestamp should be nil when absent")
	}
	if rec.StatusCode == nil || *rec.StatusCode != 4002 {
		t.Fatalf("StatusCode = %v, want 4002", rec.StatusCode)
	}
	if rec.Message != "igniter continuity lost" {
		t.Errorf("Message = %q", rec.Message)
	}
}

func TestParseMissingStatusCode(t *testing.T) {
	rec := Parse("2026-07-30T14:05:09.123456Z boot complete")
	if rec.Timestamp == nil {
		t.Fatal("Timestamp not parsed")
	}
	if rec.StatusCode != nil {
		t.Error("StatusCode should be nil when absent")
	}
	if rec.Message != "boot complete" {
		t.Errorf("Message = %q, want %q", rec.Message, "boot complete")
	}
}

func TestParseMessageOnly(t *testing.T) {
	rec := Parse("heartbeat missed")
	if rec.Timestamp != nil || rec.StatusCode != nil || rec.Board != nil {
		t.Errorf("expected only a message, got %+v", rec)
	}
	if rec.Message != "heartbeat missed" {
		t.Errorf("Message = %q, want %q", rec.Message, "heartbeat missed")
	}
}

func TestParseStatusCodeDerivesBoard(t *testing.T) {
	rec := Parse("1999 bb1 event")
	if rec.Board == nil || int(*rec.Board) != 1 {
		t.Fatalf("Board = %v, want 1 (1999/1000)", rec.Board)
	}
}

func TestParseDoesNotMistakeFourDigitWordForCode(t *testing.T) {
	// "abcd" is not a valid status code; it should fall through to message.
	rec := Parse("abcd not a code")
	if rec.StatusCode != nil {
		t.Errorf("StatusCode = %v, want nil", rec.StatusCode)
	}
	if rec.Message != "abcd not a code" {
		t.Errorf("Message = %q, want %q", rec.Message, "abcd not a code")
	}
}
