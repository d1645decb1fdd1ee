// Limewire-proxy is a transparent fan-out relay between one flight
// computer and any number of downstream bridge/observer clients.
//
// Usage:
//
//	limewire-proxy run [flags]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/masa-umich/limewire/internal/latency"
	"github.com/masa-umich/limewire/internal/logging"
	"github.com/masa-umich/limewire/internal/proxy"
	"github.com/masa-umich/limewire/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "limewire-proxy",
	Short:   "Fan out one flight-computer TCP session to many downstream clients",
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

var (
	debug        bool
	listenAddr   string
	upstreamAddr string
	latencyCSV   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the proxy",
	Long: `Run accepts any number of downstream TCP clients on --listen and
relays a single upstream flight-computer session (--upstream) to all of
them, byte-for-byte and in order. If the upstream link drops, every
downstream client is closed and the proxy restarts its upstream connect
loop; the downstream listener stays up throughout.`,
	RunE: runProxy,
}

func init() {
	runCmd.Flags().BoolVar(&debug, "debug", false, "enable verbose logging")
	runCmd.Flags().StringVar(&listenAddr, "listen", ":5050", "address downstream clients connect to")
	runCmd.Flags().StringVar(&upstreamAddr, "upstream", "141.212.192.170:5000", "flight computer's ip:port")
	runCmd.Flags().StringVar(&latencyCSV, "latency-csv", "", "path to an append-only latency CSV (disabled if empty)")
}

func runProxy(cmd *cobra.Command, args []string) error {
	level := ""
	if debug {
		level = "debug"
	}
	if err := logging.Initialize(level); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logging.Sync()
	log := logging.GetLogger()

	var recorder *latency.Recorder
	if latencyCSV != "" {
		var err error
		recorder, err = latency.Open(latencyCSV)
		if err != nil {
			return fmt.Errorf("opening latency csv: %w", err)
		}
		defer recorder.Close()
	}

	cfg := proxy.Config{
		ListenAddr:   listenAddr,
		UpstreamAddr: upstreamAddr,
	}
	p := proxy.New(cfg, recorder, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("limewire-proxy starting",
		zap.String("listen_addr", listenAddr),
		zap.String("upstream_addr", upstreamAddr),
		zap.String("version", version.Full()))

	return p.Run(ctx)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("limewire-proxy %s\n", version.Full())
	},
}
