// Fc-simulator drives the wire protocol from the flight computer's side
// of the link, for testing the bridge and proxy without real hardware.
//
// Usage:
//
//	fc-simulator run [flags]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/masa-umich/limewire/internal/logging"
	"github.com/masa-umich/limewire/internal/simulator"
	"github.com/masa-umich/limewire/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "fc-simulator",
	Short:   "Simulate a flight computer's wire-protocol session",
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

var (
	debug      bool
	listenAddr string
	udpTarget  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the simulator",
	Long: `Run accepts TCP sessions (each served concurrently) and emits Telemetry for
every board at 50 Hz (with an occasional zero timestamp to exercise the
store's validation path), echoes ValveCommand as ValveState, and acks
DeviceCommand. If --udp-target is set, every Telemetry message is also
broadcast over UDP so the bridge's UDP path can be exercised.`,
	RunE: runSimulator,
}

func init() {
	runCmd.Flags().BoolVar(&debug, "debug", false, "enable verbose logging")
	runCmd.Flags().StringVar(&listenAddr, "listen", ":5000", "address the simulated flight computer accepts TCP sessions on")
	runCmd.Flags().StringVar(&udpTarget, "udp-target", "", "host:port to additionally broadcast telemetry over UDP (disabled if empty)")
}

func runSimulator(cmd *cobra.Command, args []string) error {
	level := ""
	if debug {
		level = "debug"
	}
	if err := logging.Initialize(level); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logging.Sync()
	log := logging.GetLogger()

	cfg := simulator.Config{
		ListenAddr:         listenAddr,
		TelemetryUDPTarget: udpTarget,
	}
	sim := simulator.New(cfg, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("fc-simulator starting",
		zap.String("listen_addr", listenAddr),
		zap.String("version", version.Full()))

	return sim.Run(ctx)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fc-simulator %s\n", version.Full())
	},
}
