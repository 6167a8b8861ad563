package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridgeline-systems/optwatch/internal/watcher"
)

var (
	watchInterval string
	watchCapacity float64
	watchQuiet    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor stored signals and alert on spikes",
	Long: `Run a foreground monitor that periodically reads stored error-rate
samples, builds a system-context snapshot, runs contextual generation,
and prints alerts when the error rate spikes or new work surfaces.

Examples:
  optwatch watch                  # check every 5 minutes (ctrl-c to stop)
  optwatch watch --interval 1m    # check every minute
  optwatch watch --capacity 16    # cap suggested work at 16 hours`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Check interval as duration string (e.g. 1m, 10m)")
	watchCmd.Flags().Float64Var(&watchCapacity, "capacity", 0, "Development capacity in hours per cycle")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Only print alerts, no status lines")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.close()

	interval := time.Duration(d.cfg.Watch.IntervalSeconds) * time.Second
	if watchInterval != "" {
		interval, err = time.ParseDuration(watchInterval)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", watchInterval, err)
		}
	}
	if interval < 10*time.Second {
		return fmt.Errorf("interval must be at least 10s, got %s", interval)
	}

	capacity := d.cfg.Watch.CapacityHours
	if watchCapacity > 0 {
		capacity = watchCapacity
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	w := watcher.New(d.db, d.engine, interval, printAlert)
	w.CapacityHours = capacity

	if !watchQuiet {
		fmt.Printf("optwatch watching... (checking every %s, capacity %.0fh)\n", interval, capacity)
	}

	err = w.Run(ctx)
	if err == context.Canceled {
		if !watchQuiet {
			fmt.Println("\nStopped.")
		}
		return nil
	}
	return err
}

// printAlert formats and prints an alert to the terminal.
func printAlert(a watcher.Alert) {
	timestamp := a.Time.Format("15:04:05")
	fmt.Printf("[%s] %s %s\n", timestamp, alertIcon(a.Level), a.Title)
	if a.Message != "" {
		fmt.Printf("         %s\n", a.Message)
	}
}

// alertIcon returns the terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case "critical":
		return "\xf0\x9f\x94\xb4" // red circle
	case "warning":
		return "\xe2\x9a\xa0\xef\xb8\x8f" // warning sign
	case "info":
		return "\xe2\x9c\x93" // check mark
	default:
		return " "
	}
}
