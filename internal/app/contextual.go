package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridgeline-systems/optwatch/internal/engine"
	"github.com/ridgeline-systems/optwatch/internal/output"
)

var (
	contextualFile     string
	contextualCapacity float64
	contextualSave     bool
)

var contextualCmd = &cobra.Command{
	Use:   "contextual",
	Short: "React to a live system-context snapshot",
	Long: `Generate suggestions in reaction to live system conditions. The
snapshot is read from a JSON file describing error trends, system load,
business calendar, and available capacity. Three independent triggers
fire from it:

  error spike         current rate > 1.5x the rate a day ago
  high load           CPU > 80%, memory > 85%, or response time > 2s
  maintenance window  larger and architectural work is surfaced

Suggestions exceeding the available development capacity are dropped.`,
	RunE: runContextual,
}

func init() {
	contextualCmd.Flags().StringVar(&contextualFile, "context", "", "Path to a system-context JSON snapshot (required)")
	contextualCmd.Flags().Float64Var(&contextualCapacity, "capacity", 0, "Override development capacity in hours")
	contextualCmd.Flags().BoolVar(&contextualSave, "save", false, "Persist generated suggestions as proposed")
	_ = contextualCmd.MarkFlagRequired("context")
	rootCmd.AddCommand(contextualCmd)
}

func runContextual(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(contextualFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", contextualFile, err)
	}

	var sys engine.SystemContext
	if err := json.Unmarshal(data, &sys); err != nil {
		return fmt.Errorf("parsing %s: %w", contextualFile, err)
	}
	if contextualCapacity > 0 {
		sys.Resources.DevelopmentCapacityHours = contextualCapacity
	}

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()

	suggestions, err := d.engine.GenerateContextualSuggestions(ctx, &sys)
	if err != nil {
		return fmt.Errorf("generating contextual suggestions: %w", err)
	}

	if contextualSave {
		for i := range suggestions {
			if err := d.db.InsertSuggestion(ctx, &suggestions[i]); err != nil {
				return fmt.Errorf("saving suggestion: %w", err)
			}
		}
	}

	if flagJSON {
		return encodeJSON(suggestions)
	}

	fmt.Println(output.Section("Contextual Suggestions"))
	fmt.Println()
	fmt.Printf(" Environment: %s  Capacity: %.0fh\n",
		sys.Environment, sys.Resources.DevelopmentCapacityHours)
	fmt.Println()

	if len(suggestions) == 0 {
		fmt.Println(" No triggers fired, or nothing fits the available capacity.")
		return nil
	}

	for i, s := range suggestions {
		fmt.Printf(" #%d %s %s\n", i+1, output.PriorityBadge(s.Priority), output.StyleBold.Render(s.Title))
		fmt.Printf("    Effort: %.0fh  Tags: %s\n", s.EffortHours, s.Tags)
		fmt.Printf("    %s\n", s.Description)
		fmt.Println()
	}
	return nil
}
