package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridgeline-systems/optwatch/internal/output"
)

var effectivenessCmd = &cobra.Command{
	Use:   "effectiveness",
	Short: "Recalibrate confidence from observed outcomes",
	Long: `Re-score every implemented suggestion's confidence from its measured
effectiveness. Effectiveness is derived from the error-rate movement of
the suggestion's source pattern around the implementation moment; when
too few rate samples exist on either side, a neutral-positive score is
assumed. The new confidence is the mean of the old confidence and the
effectiveness score.`,
	RunE: runEffectiveness,
}

func init() {
	rootCmd.AddCommand(effectivenessCmd)
}

func runEffectiveness(cmd *cobra.Command, args []string) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.close()

	analyzed, err := d.engine.AnalyzeEffectiveness(cmd.Context())
	if err != nil {
		return fmt.Errorf("analyzing effectiveness: %w", err)
	}

	if flagJSON {
		return encodeJSON(map[string]int{"analyzed": analyzed})
	}

	fmt.Println(output.Section("Effectiveness Analysis"))
	fmt.Println()
	if analyzed == 0 {
		fmt.Println(" No implemented suggestions to analyze.")
		return nil
	}
	fmt.Printf(" Recalibrated confidence for %d implemented suggestions.\n", analyzed)
	return nil
}
