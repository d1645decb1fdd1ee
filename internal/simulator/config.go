package simulator

import "time"

// Config holds the simulator's tunables. Zero values are filled in with
// defaults by New.
type Config struct {
	// ListenAddr is where the simulated FC accepts its TCP session.
	ListenAddr string

	// TelemetryUDPTarget, if non-empty, is the "host:port" each Telemetry
	// message is additionally broadcast to over UDP, mirroring the real
	// boards' UDP telemetry path.
	TelemetryUDPTarget string

	// TickInterval is the telemetry cadence; default yields 50 Hz.
	TickInterval time.Duration

	// ZeroTimestampEvery, if positive, emits a zero timestamp on every Nth
	// telemetry iteration to exercise the store's validation path. Zero
	// is replaced by DefaultZeroTimestampEvery; a negative value disables it.
	ZeroTimestampEvery int64
}

const (
	DefaultTickInterval       = 20 * time.Millisecond
	DefaultZeroTimestampEvery = 100
)

func (c Config) withDefaults() Config {
	if c.TickInterval == 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.ZeroTimestampEvery == 0 {
		c.ZeroTimestampEvery = DefaultZeroTimestampEvery
	}
	return c
}
