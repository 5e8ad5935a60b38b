package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pulsemon/internal/config"
	"pulsemon/internal/monitor"
	"pulsemon/internal/ui"
)

var cfg = config.Default()

func main() {
	root := &cobra.Command{
		Use:   "pulsemon",
		Short: "Live hardware and kernel metrics on a single refresh clock",
		Long: `pulsemon samples CPU, memory, disk, network, GPU, battery and
thermal/fan counters on a fixed cadence and turns them into normalized,
UI-ready metrics.

Commands:
  run        Live terminal view (default)
  stream     Emit NDJSON snapshots until interrupted
  snapshot   Capture one snapshot as JSON and exit`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runView,
	}
	cfg.BindFlags(root)

	root.AddCommand(
		&cobra.Command{Use: "run", Short: "Live terminal view", RunE: runView},
		&cobra.Command{Use: "stream", Short: "Emit NDJSON snapshots until interrupted", RunE: runStream},
		&cobra.Command{Use: "snapshot", Short: "Capture one snapshot as JSON and exit", RunE: runSnapshot},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMonitor() *monitor.Monitor {
	cfg.ApplyEnv()
	cfg.Normalize()
	return monitor.New(cfg)
}

func runView(cmd *cobra.Command, args []string) error {
	mon := newMonitor()
	defer mon.Close()
	mon.Start()
	return ui.Run(mon)
}

func runStream(cmd *cobra.Command, args []string) error {
	mon := newMonitor()
	defer mon.Close()

	stream, cancel := mon.Subscribe()
	defer cancel()
	mon.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case snap := <-stream:
			if err := enc.Encode(snap); err != nil {
				return err
			}
		case <-sig:
			return nil
		}
	}
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	mon := newMonitor()
	defer mon.Close()

	stream, cancel := mon.Subscribe()
	defer cancel()
	mon.Start()

	// The first tick has no delta baseline; take the second snapshot so
	// rates and per-core usage are warm.
	var warm int
	for {
		select {
		case snap := <-stream:
			warm++
			if warm < 2 {
				continue
			}
			out, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		case <-time.After(3 * mon.Interval()):
			return fmt.Errorf("no snapshot within %s", 3*mon.Interval())
		}
	}
}
