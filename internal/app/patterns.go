package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ridgeline-systems/optwatch/internal/engine"
	"github.com/ridgeline-systems/optwatch/internal/output"
)

var (
	patternsCategory      string
	patternsMinOccurrence int
	patternsMinSeverity   int
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List or import recorded error patterns",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded error patterns",
	RunE:  runPatternsList,
}

var patternsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import error patterns from a JSON file",
	Long: `Import error patterns from a JSON file. The file is either a bare
array of patterns, or an object with "patterns" and optional
"rate_samples" arrays. Patterns with a matching id are replaced;
patterns without an id are assigned one. Rate samples feed spike
detection and effectiveness measurement.`,
	Args: cobra.ExactArgs(1),
	RunE: runPatternsImport,
}

func init() {
	patternsListCmd.Flags().StringVar(&patternsCategory, "category", "", "Filter by category")
	patternsListCmd.Flags().IntVar(&patternsMinOccurrence, "min-occurrence", 0, "Minimum occurrence count")
	patternsListCmd.Flags().IntVar(&patternsMinSeverity, "min-severity", 0, "Minimum severity level (1-5)")
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsImportCmd)
	rootCmd.AddCommand(patternsCmd)
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.close()

	patterns, err := d.db.GetPatterns(cmd.Context(), engine.PatternFilter{
		Category:      patternsCategory,
		MinOccurrence: patternsMinOccurrence,
		MinSeverity:   patternsMinSeverity,
	})
	if err != nil {
		return fmt.Errorf("listing patterns: %w", err)
	}

	if flagJSON {
		return encodeJSON(patterns)
	}

	fmt.Println(output.Section("Error Patterns"))
	fmt.Println()

	if len(patterns) == 0 {
		fmt.Println(" No patterns recorded. Import some with 'optwatch patterns import'.")
		return nil
	}

	t := output.NewTable("ID", "CATEGORY", "TARGET", "SEV", "COUNT", "CONF")
	t.StyleColumn(3, styleNumericCell(func(v float64) lipgloss.Style {
		return output.PriorityStyle(int(v))
	}))
	t.StyleColumn(5, styleNumericCell(output.ConfidenceStyle))
	for _, p := range patterns {
		t.AddRow(
			shortID(p.ID),
			categoryLabel(p),
			p.Target,
			fmt.Sprintf("%d", p.SeverityLevel),
			fmt.Sprintf("%d", p.OccurrenceCount),
			fmt.Sprintf("%.2f", p.Confidence),
		)
	}
	t.Print()
	return nil
}

// importDoc is the object form of an import file.
type importDoc struct {
	Patterns    []engine.ErrorPattern `json:"patterns"`
	RateSamples []engine.RateSample   `json:"rate_samples"`
}

func runPatternsImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var doc importDoc
	if err := json.Unmarshal(data, &doc.Patterns); err != nil {
		// Not a bare array; try the object form.
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
	}

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()

	for i := range doc.Patterns {
		if err := d.db.UpsertPattern(ctx, &doc.Patterns[i]); err != nil {
			return fmt.Errorf("importing pattern %d: %w", i, err)
		}
	}
	for i, s := range doc.RateSamples {
		if err := d.db.InsertRateSample(ctx, s); err != nil {
			return fmt.Errorf("importing rate sample %d: %w", i, err)
		}
	}

	fmt.Printf("Imported %d patterns, %d rate samples.\n", len(doc.Patterns), len(doc.RateSamples))
	return nil
}

// categoryLabel renders "Category/Subcategory" or just the category.
func categoryLabel(p engine.ErrorPattern) string {
	if p.Subcategory != "" {
		return p.Category + "/" + p.Subcategory
	}
	return p.Category
}

// shortID truncates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
