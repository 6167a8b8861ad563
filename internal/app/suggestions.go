package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ridgeline-systems/optwatch/internal/engine"
	"github.com/ridgeline-systems/optwatch/internal/output"
)

var suggestionsStatus string

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Manage the suggestion review lifecycle",
}

var suggestionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted suggestions",
	RunE:  runSuggestionsList,
}

var suggestionsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Mark a suggestion approved for implementation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], engine.StatusApproved)
	},
}

var suggestionsImplementCmd = &cobra.Command{
	Use:   "implement <id>",
	Short: "Mark a suggestion implemented",
	Long: `Mark a suggestion implemented, recording the implementation moment.
The effectiveness analyzer later compares error rates before and after
this moment to recalibrate the suggestion's confidence.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], engine.StatusImplemented)
	},
}

var suggestionsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Mark a suggestion rejected",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], engine.StatusRejected)
	},
}

func init() {
	suggestionsListCmd.Flags().StringVar(&suggestionsStatus, "status", "", "Filter by status (proposed, approved, implemented, rejected)")
	suggestionsCmd.AddCommand(suggestionsListCmd)
	suggestionsCmd.AddCommand(suggestionsApproveCmd)
	suggestionsCmd.AddCommand(suggestionsImplementCmd)
	suggestionsCmd.AddCommand(suggestionsRejectCmd)
	rootCmd.AddCommand(suggestionsCmd)
}

func runSuggestionsList(cmd *cobra.Command, args []string) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.close()

	suggestions, err := d.db.GetSuggestions(cmd.Context(), engine.SuggestionStatus(suggestionsStatus))
	if err != nil {
		return fmt.Errorf("listing suggestions: %w", err)
	}

	if flagJSON {
		return encodeJSON(suggestions)
	}

	fmt.Println(output.Section("Persisted Suggestions"))
	fmt.Println()

	if len(suggestions) == 0 {
		fmt.Println(" No suggestions persisted. Generate some with 'optwatch suggest --save'.")
		return nil
	}

	t := output.NewTable("ID", "PRI", "STATUS", "EFFORT", "CONF", "TITLE")
	t.StyleColumn(1, styleNumericCell(func(v float64) lipgloss.Style {
		return output.PriorityStyle(int(v))
	}))
	t.StyleColumn(2, func(cell string) string {
		return output.StatusStyle(strings.TrimSpace(cell)).Render(cell)
	})
	t.StyleColumn(4, styleNumericCell(output.ConfidenceStyle))
	for _, s := range suggestions {
		t.AddRow(
			shortID(s.ID),
			fmt.Sprintf("%d", s.Priority),
			string(s.Status),
			fmt.Sprintf("%.0fh", s.EffortHours),
			fmt.Sprintf("%.2f", s.Confidence),
			s.Title,
		)
	}
	t.Print()
	return nil
}

// styleNumericCell adapts a value-keyed style picker into a table column
// styler. Cells that do not parse as numbers pass through unstyled.
func styleNumericCell(pick func(v float64) lipgloss.Style) func(cell string) string {
	return func(cell string) string {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return cell
		}
		return pick(v).Render(cell)
	}
}

func setStatus(cmd *cobra.Command, id string, status engine.SuggestionStatus) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.close()

	if err := d.db.UpdateSuggestionStatus(cmd.Context(), id, status); err != nil {
		return err
	}
	fmt.Printf("Suggestion %s marked %s.\n", shortID(id), status)
	return nil
}
