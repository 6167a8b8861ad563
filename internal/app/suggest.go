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
	suggestTop      int
	suggestCategory string
	suggestSave     bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate ranked optimization suggestions",
	Long: `Expand recorded error patterns into enriched, deduplicated
suggestions ranked by estimated impact.

By default every recorded pattern is considered. With --top N, only
high-impact patterns are considered (occurrence, severity, and confidence
floors apply) and the result is re-ranked by a weighted blend of impact,
urgency, feasibility, and confidence before the top N are returned.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVar(&suggestTop, "top", 0, "Use advanced prioritization and return only the top N")
	suggestCmd.Flags().StringVar(&suggestCategory, "category", "", "Only consider patterns in this category")
	suggestCmd.Flags().BoolVar(&suggestSave, "save", false, "Persist generated suggestions as proposed")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()

	var suggestions []engine.Suggestion
	if suggestTop > 0 {
		suggestions, err = d.engine.GeneratePrioritizedSuggestions(ctx, suggestTop)
	} else {
		patterns, perr := d.db.GetPatterns(ctx, engine.PatternFilter{Category: suggestCategory})
		if perr != nil {
			return fmt.Errorf("fetching patterns: %w", perr)
		}
		if patterns == nil {
			patterns = []engine.ErrorPattern{}
		}
		suggestions, err = d.engine.GenerateComprehensiveSuggestions(ctx, patterns)
	}
	if err != nil {
		return fmt.Errorf("generating suggestions: %w", err)
	}

	if suggestSave {
		for i := range suggestions {
			if err := d.db.InsertSuggestion(ctx, &suggestions[i]); err != nil {
				return fmt.Errorf("saving suggestion: %w", err)
			}
		}
	}

	if flagJSON {
		return encodeJSON(suggestions)
	}

	renderSuggestions(suggestions)
	return nil
}

func renderSuggestions(suggestions []engine.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Println(output.Section("Suggestions"))
		fmt.Println()
		fmt.Println(" No suggestions. No recorded pattern matched a generation rule.")
		return
	}

	fmt.Println(output.Section("Optimization Suggestions"))
	fmt.Println()

	for i, s := range suggestions {
		fmt.Printf(" #%d %s %s\n", i+1, output.PriorityBadge(s.Priority), output.StyleBold.Render(s.Title))
		fmt.Printf("    Impact %s  Effort: %.0fh  Type: %s\n",
			output.ImpactBar(engine.ImpactScore(s), 10), s.EffortHours, s.Type)
		fmt.Printf("    %s\n", s.Description)
		if flagVerbose {
			fmt.Printf("    ID: %s  Pattern: %s  Tags: %s\n", s.ID, s.PatternID, s.Tags)
		}
		fmt.Println()
	}
}

func encodeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
