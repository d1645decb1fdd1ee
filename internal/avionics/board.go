package avionics

import "fmt"

// Board is a flight-computer board on the avionics network. It is a closed
// enumeration: the numeric identifier is what appears on the wire and is
// stable; every other attribute is derived from it.
type Board uint8

const (
	FC Board = iota
	BB1
	BB2
	BB3
	FR

	boardCount = int(FR) + 1
)

var boardNames = [boardCount]string{
	FC:  "fc",
	BB1: "bb1",
	BB2: "bb2",
	BB3: "bb3",
	FR:  "fr",
}

var boardNumValues = [boardCount]int{
	FC:  47,
	BB1: 52,
	BB2: 52,
	BB3: 52,
	FR:  14,
}

var boardNumValves = [boardCount]int{
	FC:  3,
	BB1: 7,
	BB2: 7,
	BB3: 7,
	FR:  0,
}

// BoardFromID resolves a wire-level board identifier. ok is false for any
// value outside the closed enumeration.
func BoardFromID(id uint8) (Board, bool) {
	if int(id) >= boardCount {
		return 0, false
	}
	return Board(id), true
}

// ID returns the wire identifier for the board, 0..4.
func (b Board) ID() uint8 {
	return uint8(b)
}

// Valid reports whether b is one of the five defined boards.
func (b Board) Valid() bool {
	return int(b) < boardCount
}

// Name returns the board's lowercase name, e.g. "bb1".
func (b Board) Name() string {
	if !b.Valid() {
		return fmt.Sprintf("board(%d)", uint8(b))
	}
	return boardNames[b]
}

// String implements fmt.Stringer.
func (b Board) String() string {
	return b.Name()
}

// NumValues is the number of float32 telemetry values the board reports.
func (b Board) NumValues() int {
	if !b.Valid() {
		return 0
	}
	return boardNumValues[b]
}

// NumValves is the number of controllable valves owned by the board.
func (b Board) NumValves() int {
	if !b.Valid() {
		return 0
	}
	return boardNumValves[b]
}

// IndexChannel returns the store index-channel name for the board's
// telemetry, e.g. "bb1_timestamp".
func (b Board) IndexChannel() string {
	return b.Name() + "_timestamp"
}

// Boards lists every defined board in wire-identifier order.
func Boards() []Board {
	boards := make([]Board, boardCount)
	for i := range boards {
		boards[i] = Board(i)
	}
	return boards
}
