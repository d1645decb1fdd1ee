package eventlog

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/masa-umich/limewire/internal/avionics"
)

const timestampLayout = "2006-01-02T15:04:05.999999Z"

var statusCodePattern = regexp.MustCompile(`^\d{4}$`)

// Record is one parsed firmware event line. Timestamp and StatusCode are
// both optional in the wire format; Board is derived from StatusCode when
// present.
type Record struct {
	Timestamp  *time.Time
	Board      *avionics.Board
	StatusCode *int
	Message    string
}

// Parse decodes one ASCII event line in the format
// "YYYY-MM-DDTHH:MM:SS.ffffffZ NNNN message-text", where the leading
// timestamp and the leading four-digit status code are each optional.
// Every input produces a Record; there is no malformed-grammar case, only
// an absent leading field.
func Parse(line string) Record {
	rest := strings.TrimRight(line, "\r\n")

	var rec Record

	var ts time.Time
	var ok bool
	rest, ts, ok = consumeTimestamp(rest)
	if ok {
		rec.Timestamp = &ts
	}

	var code int
	rest, code, ok = consumeStatusCode(rest)
	if ok {
		rec.StatusCode = &code
		board := avionics.Board(code / 1000)
		rec.Board = &board
	}

	rec.Message = strings.TrimSpace(rest)
	return rec
}

func consumeTimestamp(s string) (string, time.Time, bool) {
	token, remainder := splitFirstToken(s)
	if token == "" {
		return s, time.Time{}, false
	}
	t, err := time.Parse(timestampLayout, token)
	if err != nil {
		return s, time.Time{}, false
	}
	return remainder, t, true
}

func consumeStatusCode(s string) (string, int, bool) {
	token, remainder := splitFirstToken(s)
	if !statusCodePattern.MatchString(token) {
		return s, 0, false
	}
	code, err := strconv.Atoi(token)
	if err != nil {
		return s, 0, false
	}
	return remainder, code, true
}

// splitFirstToken peels the first space-delimited token off s, trimming
// any leading spaces first so repeated calls compose.
func splitFirstToken(s string) (token, remainder string) {
	s = strings.TrimLeft(s, " ")
	idx := strings.IndexByte(s, ' ')
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+1:]
}
