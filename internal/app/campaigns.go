package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridgeline-systems/optwatch/internal/engine"
	"github.com/ridgeline-systems/optwatch/internal/output"
)

var campaignsCategory string

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Group suggestions into themed campaigns",
	Long: `Generate suggestions from recorded patterns and bundle related work
into themed campaigns with phased rollout plans. Quick wins come first,
then core improvements, then architectural work; each phase lists the
earlier phases as prerequisites.`,
	RunE: runCampaigns,
}

func init() {
	campaignsCmd.Flags().StringVar(&campaignsCategory, "category", "", "Only consider patterns in this category")
	rootCmd.AddCommand(campaignsCmd)
}

func runCampaigns(cmd *cobra.Command, args []string) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()

	patterns, err := d.db.GetPatterns(ctx, engine.PatternFilter{Category: campaignsCategory})
	if err != nil {
		return fmt.Errorf("fetching patterns: %w", err)
	}
	if patterns == nil {
		patterns = []engine.ErrorPattern{}
	}

	suggestions, err := d.engine.GenerateComprehensiveSuggestions(ctx, patterns)
	if err != nil {
		return fmt.Errorf("generating suggestions: %w", err)
	}

	campaigns, err := d.engine.GroupIntoCampaigns(suggestions)
	if err != nil {
		return fmt.Errorf("grouping campaigns: %w", err)
	}

	if flagJSON {
		return encodeJSON(campaigns)
	}

	renderCampaigns(campaigns)
	return nil
}

func renderCampaigns(campaigns []engine.Campaign) {
	fmt.Println(output.Section("Optimization Campaigns"))
	fmt.Println()

	if len(campaigns) == 0 {
		fmt.Println(" No campaigns. Not enough related suggestions to bundle.")
		return
	}

	for _, c := range campaigns {
		fmt.Printf(" %s %s\n", output.PriorityBadge(c.Priority), output.StyleBold.Render(c.Name))
		fmt.Printf("   Impact %s  Effort: %.0fh  Suggestions: %d\n",
			output.ImpactBar(c.EstimatedImpact, 10), c.EffortHours, len(c.Suggestions))

		for _, phase := range c.Phases {
			fmt.Printf("   %s %s (%d tasks, ~%s)\n",
				output.StyleMuted.Render("phase:"), phase.Name,
				len(phase.SuggestionIDs), formatDuration(phase.Duration))
		}

		if flagVerbose {
			for _, o := range c.ExpectedOutcomes {
				fmt.Printf("   %s %s\n", output.StyleMuted.Render("outcome:"), o)
			}
			for _, m := range c.SuccessMetrics {
				fmt.Printf("   %s %s\n", output.StyleMuted.Render("metric:"), m)
			}
		}
		fmt.Println()
	}
}

// formatDuration renders a phase duration in whole days.
func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
