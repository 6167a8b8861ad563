// Package app contains the Cobra command tree for optwatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "optwatch",
	Short: "Suggestion intelligence for recurring error patterns",
	Long: `optwatch turns recorded error patterns into ranked optimization
suggestions. It expands patterns through built-in rules, enriches the
results with confidence and effort estimates, merges near-duplicates,
ranks by impact, bundles related work into themed campaigns, reacts to
live system conditions, and recalibrates its own confidence from
observed outcomes.

Run 'optwatch' with no arguments to see the available subcommands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("optwatch", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  patterns       List or import recorded error patterns")
		fmt.Println("  suggest        Generate ranked optimization suggestions")
		fmt.Println("  campaigns      Group suggestions into themed campaigns")
		fmt.Println("  contextual     React to a live system-context snapshot")
		fmt.Println("  effectiveness  Recalibrate confidence from observed outcomes")
		fmt.Println("  suggestions    Manage the suggestion review lifecycle")
		fmt.Println("  watch          Monitor stored signals and alert on spikes")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/optwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
