package channelmap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/masa-umich/limewire/internal/errs"
)

// Channel is one data channel's name alongside its once-computed Kind.
type Channel struct {
	Name string
	Kind Kind
}

// IndexEntry is one board's telemetry shape: the ordered data channels a
// Telemetry message's values map onto, and the channel that receives the
// bridge's own write-time stamp. Keeping WriteTimeChannel out of
// DataChannels makes it impossible to forget to skip it when zipping
// positional values.
type IndexEntry struct {
	DataChannels     []Channel
	WriteTimeChannel string
}

// Map is the loaded index-channel -> IndexEntry mapping.
type Map struct {
	entries map[string]IndexEntry
}

// rawDocument is the on-disk JSON shape: index-channel name -> ordered list
// of data-channel names, one of which is the reserved write-time channel.
type rawDocument map[string][]string

// Load reads and classifies the channel map from path. When fcOnly is true
// (LIMEWIRE_DEV_SYNNAX is set) every entry except the FC index channel is
// discarded at load time; this is purely a configuration knob and does not
// change the semantics of any other operation.
func Load(path string, fcOnly bool) (*Map, error) {
	const op = "channelmap.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.Config, op, fmt.Errorf("reading channel map %s: %w", path, err))
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.New(errs.Config, op, fmt.Errorf("parsing channel map %s: %w", path, err))
	}

	m := &Map{entries: make(map[string]IndexEntry, len(raw))}
	for indexName, names := range raw {
		if fcOnly && indexName != "fc_timestamp" {
			continue
		}

		entry := IndexEntry{WriteTimeChannel: writeTimeOf(indexName)}
		for _, name := range names {
			if name == entry.WriteTimeChannel {
				continue
			}
			entry.DataChannels = append(entry.DataChannels, Channel{Name: name, Kind: classify(name)})
		}
		m.entries[indexName] = entry
	}

	return m, nil
}

// Lookup returns the IndexEntry for an index-channel name.
func (m *Map) Lookup(indexChannel string) (IndexEntry, bool) {
	entry, ok := m.entries[indexChannel]
	return entry, ok
}

// AllChannelNames lists every channel name the map knows about: each index
// channel, its write-time channel, and all of its data channels. Used to
// open a store writer broad enough to cover every board at once.
func (m *Map) AllChannelNames() []string {
	var names []string
	for indexName, entry := range m.entries {
		names = append(names, indexName, entry.WriteTimeChannel)
		for _, ch := range entry.DataChannels {
			names = append(names, ch.Name)
		}
	}
	return names
}

// IndexChannels lists every index channel retained in the map.
func (m *Map) IndexChannels() []string {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	return names
}

// IsValveCommand reports whether name is a "<board>_vlv_<n>" channel.
func IsValveCommand(name string) bool {
	return classify(name) == UINT8 && strings.Contains(name, "_vlv_")
}

// IsValveState reports whether name is a "<board>_state_<n>" channel.
func IsValveState(name string) bool {
	return classify(name) == UINT8 && strings.Contains(name, "_state_")
}

// writeTimeOf derives the reserved write-time channel name for an index
// channel: the index name with "timestamp" replaced by
// "limewire_write_time". It is idempotent when x already ends in
// "_timestamp".
func writeTimeOf(indexChannel string) string {
	return strings.Replace(indexChannel, "timestamp", "limewire_write_time", 1)
}

// WriteTimeOf exposes the derivation for callers outside this package, e.g.
// the frame builder confirming a channel it didn't get from an IndexEntry.
func WriteTimeOf(indexChannel string) string {
	return writeTimeOf(indexChannel)
}
