package avionics

import "testing"

func TestBoardFromID(t *testing.T) {
	tests := []struct {
		name    string
		id      uint8
		want    Board
		wantErr bool
	}{
		{"fc", 0, FC, false},
		{"bb1", 1, BB1, false},
		{"bb2", 2, BB2, false},
		{"bb3", 3, BB3, false},
		{"fr", 4, FR, false},
		{"out of range", 5, 0, true},
		{"far out of range", 255, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BoardFromID(tt.id)
			if ok == tt.wantErr {
				t.Fatalf("BoardFromID(%d) ok=%v, want ok=%v", tt.id, ok, !tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("BoardFromID(%d) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestBoardAttributes(t *testing.T) {
	tests := []struct {
		board     Board
		numValues int
		numValves int
		index     string
	}{
		{FC, 47, 3, "fc_timestamp"},
		{BB1, 52, 7, "bb1_timestamp"},
		{BB2, 52, 7, "bb2_timestamp"},
		{BB3, 52, 7, "bb3_timestamp"},
		{FR, 14, 0, "fr_timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.board.Name(), func(t *testing.T) {
			if got := tt.board.NumValues(); got != tt.numValues {
				t.Errorf("NumValues() = %d, want %d", got, tt.numValues)
			}
			if got := tt.board.NumValves(); got != tt.numValves {
				t.Errorf("NumValves() = %d, want %d", got, tt.numValves)
			}
			if got := tt.board.IndexChannel(); got != tt.index {
				t.Errorf("IndexChannel() = %q, want %q", got, tt.index)
			}
		})
	}
}

func TestValveFromIDRoundTrip(t *testing.T) {
	for _, b := range Boards() {
		for n := 1; n <= b.NumValves(); n++ {
			want := Valve{Board: b, Ordinal: n}
			id := want.ID()
			got, ok := ValveFromID(id)
			if !ok {
				t.Fatalf("ValveFromID(%d) for %s/%d: ok=false", id, b, n)
			}
			if got != want {
				t.Fatalf("ValveFromID(%d) = %+v, want %+v", id, got, want)
			}
		}
	}
}

func TestValveFromIDRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		id   uint8
	}{
		{"FR has no valves", 40 + 1},
		{"FC ordinal too high", 0*10 + 4},
		{"BB1 ordinal too high", 1*10 + 8},
		{"ordinal zero", 10 + 0},
		{"board out of range", 50 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ValveFromID(tt.id); ok {
				t.Fatalf("ValveFromID(%d) = ok, want decode failure", tt.id)
			}
		})
	}
}

func TestValveChannelNames(t *testing.T) {
	v := Valve{Board: BB2, Ordinal: 3}
	if got, want := v.CommandChannel(), "bb2_vlv_3"; got != want {
		t.Errorf("CommandChannel() = %q, want %q", got, want)
	}
	if got, want := v.CommandTimeChannel(), "bb2_vlv_3_timestamp"; got != want {
		t.Errorf("CommandTimeChannel() = %q, want %q", got, want)
	}
	if got, want := v.StateChannel(), "bb2_state_3"; got != want {
		t.Errorf("StateChannel() = %q, want %q", got, want)
	}
	if got, want := v.StateTimeChannel(), "bb2_state_3_timestamp"; got != want {
		t.Errorf("StateTimeChannel() = %q, want %q", got, want)
	}
}

func TestDeviceCommandString(t *testing.T) {
	if got := CommandReset.String(); got != "reset" {
		t.Errorf("CommandReset.String() = %q, want %q", got, "reset")
	}
	unknown := DeviceCommand(0xEE)
	if unknown.Known() {
		t.Errorf("unknown command reported as known")
	}
	if got := unknown.String(); got != "unknown" {
		t.Errorf("unknown.String() = %q, want %q", got, "unknown")
	}
}
