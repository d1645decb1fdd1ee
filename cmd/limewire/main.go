// Limewire is the ground-side telemetry and command bridge between the
// flight-computer network and the store.
//
// It continuously ingests board telemetry, maintains a reconnecting
// command/ack session with the flight computer, and translates between the
// wire protocol and the store's framed column writes.
//
// Usage:
//
//	limewire run [fc_address] [flags]
//
// See 'limewire run --help' for available options.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/masa-umich/limewire/internal/bridge"
	"github.com/masa-umich/limewire/internal/channelmap"
	"github.com/masa-umich/limewire/internal/config"
	"github.com/masa-umich/limewire/internal/discovery"
	"github.com/masa-umich/limewire/internal/eventlog"
	"github.com/masa-umich/limewire/internal/latency"
	"github.com/masa-umich/limewire/internal/logging"
	"github.com/masa-umich/limewire/internal/store"
	"github.com/masa-umich/limewire/internal/tui"
	"github.com/masa-umich/limewire/internal/version"
	"golang.org/x/term"
)

// DefaultFCAddress is the flight computer's default control-plane address,
// used when no positional argument or discovered endpoint overrides it.
const DefaultFCAddress = "141.212.192.170:5000"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "limewire",
	Short:   "Limewire ground-side telemetry and command bridge",
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

var (
	debug               bool
	overwriteTimestamps bool
	channelMapPath      string
	telemetryUDPAddr    string
	eventLogAddr        string
	eventLogFile        string
	latencyCSVPath      string
	handoffChannel      string
	useTUI              bool
	discover            bool
)

var runCmd = &cobra.Command{
	Use:   "run [fc_address]",
	Short: "Dial the flight computer and run the bridge",
	Long: `Run dials the flight computer at fc_address (default 141.212.192.170:5000),
ingests board telemetry over UDP, writes it to the store, and relays store
valve commands back over the TCP session.

Store connection parameters come from the SYNNAX_HOST, SYNNAX_PORT,
SYNNAX_USERNAME, SYNNAX_PASSWORD, and SYNNAX_SECURE environment variables.
Setting LIMEWIRE_DEV_SYNNAX restricts the channel map to the flight
computer's own channels, for bench testing without bay boards attached.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBridge,
}

func init() {
	runCmd.Flags().BoolVar(&debug, "debug", false, "enable verbose logging")
	runCmd.Flags().BoolVar(&overwriteTimestamps, "overwrite-timestamps", false, "stamp inbound telemetry with receive wall-clock instead of its own timestamp")
	runCmd.Flags().StringVar(&channelMapPath, "channel-map", "", "path to the channel-map JSON file (required)")
	runCmd.Flags().StringVar(&telemetryUDPAddr, "telemetry-addr", ":6767", "local address the UDP telemetry reader listens on")
	runCmd.Flags().StringVar(&eventLogAddr, "event-log-addr", ":1234", "local address the firmware event-log receiver listens on")
	runCmd.Flags().StringVar(&eventLogFile, "event-log-file", "", "path to the rolling event-log file (disabled if empty)")
	runCmd.Flags().StringVar(&latencyCSVPath, "latency-csv", "", "path to an append-only latency CSV (disabled if empty)")
	runCmd.Flags().StringVar(&handoffChannel, "handoff-channel", "", "store channel to watch for ETHERNET/RADIO handoff requests (disabled if empty)")
	runCmd.Flags().BoolVar(&useTUI, "tui", false, "run a live terminal dashboard instead of plain logs")
	runCmd.Flags().BoolVar(&discover, "discover", false, "use mDNS to discover the flight computer instead of dialing fc_address directly")
}

func runBridge(cmd *cobra.Command, args []string) error {
	level := ""
	if debug {
		level = "debug"
	}
	if err := logging.Initialize(level); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logging.Sync()
	log := logging.GetLogger()

	if channelMapPath == "" {
		return fmt.Errorf("--channel-map is required")
	}

	settings := config.LoadSettingsFromEnv()

	fcAddress := DefaultFCAddress
	if len(args) == 1 {
		fcAddress = args[0]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if discover {
		resolved, err := discoverFC(ctx, log)
		if err != nil {
			return fmt.Errorf("discovering flight computer: %w", err)
		}
		fcAddress = resolved
	}

	cm, err := channelmap.Load(channelMapPath, settings.DevMode)
	if err != nil {
		return fmt.Errorf("loading channel map: %w", err)
	}

	adapter := store.NewClient(settings.Store, log)
	if err := ensureChannels(ctx, adapter, cm); err != nil {
		return fmt.Errorf("ensuring store channels: %w", err)
	}

	var latencyRecorder *latency.Recorder
	if latencyCSVPath != "" {
		latencyRecorder, err = latency.Open(latencyCSVPath)
		if err != nil {
			return fmt.Errorf("opening latency csv: %w", err)
		}
		defer latencyRecorder.Close()
	}

	bridgeCfg := bridge.Config{
		FCAddress:           fcAddress,
		TelemetryUDPAddr:    telemetryUDPAddr,
		OverwriteTimestamps: overwriteTimestamps,
		HandoffChannel:      handoffChannel,
	}

	sup := bridge.New(bridgeCfg, cm, adapter, nil, latencyRecorder, log)

	var eventReceiver *eventlog.Receiver
	if eventLogAddr != "" {
		eventReceiver, err = eventlog.Listen(eventLogAddr, eventLogFile, log)
		if err != nil {
			return fmt.Errorf("starting event-log receiver: %w", err)
		}
		defer eventReceiver.Close()
		go eventReceiver.Run(ctx)
	}

	if useTUI && term.IsTerminal(int(os.Stdout.Fd())) {
		go func() {
			if err := sup.Run(ctx); err != nil {
				log.Error("supervisor exited with error", zap.Error(err))
			}
		}()
		if err := tui.Run(sup, fcAddress); err != nil {
			cancel()
			return fmt.Errorf("dashboard exited: %w", err)
		}
		cancel()
		return nil
	}

	log.Info("limewire starting", zap.String("fc_address", fcAddress), zap.String("version", version.Full()))
	return sup.Run(ctx)
}

// ensureChannels materializes every channel the loaded map references
// before the supervisor ever opens a writer against them, since the store
// adapter's OpenWriter does not create missing channels itself.
func ensureChannels(ctx context.Context, adapter *store.Client, cm *channelmap.Map) error {
	for _, indexChannel := range cm.IndexChannels() {
		entry, _ := cm.Lookup(indexChannel)
		if err := adapter.EnsureChannels(ctx, indexChannel, entry); err != nil {
			return err
		}
	}
	return nil
}

func discoverFC(ctx context.Context, log *zap.Logger) (string, error) {
	scanner := discovery.NewScanner()
	scanner.Timeout = 10 * time.Second
	ep, err := scanner.WaitForFirst(ctx)
	if err != nil {
		return "", err
	}
	log.Info("discovered flight computer", zap.Stringer("endpoint", ep))
	registry, err := config.LoadRegistry()
	if err == nil {
		registry.RememberEndpoint(ep.Address(), "")
		_ = registry.Save()
	}
	return ep.Address(), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("limewire %s\n", version.Full())
	},
}
