package engine

import (
	"context"
	"fmt"
)

// defaultEffectiveness is the neutral-positive score assumed when no real
// outcome measurement is available.
const defaultEffectiveness = 0.8

// ConstantMeasurer is the fallback Measurer: effectiveness unknown, assume
// neutral-positive.
type ConstantMeasurer struct {
	Score float64
}

// Measure returns the fixed score.
func (m ConstantMeasurer) Measure(ctx context.Context, s Suggestion) (float64, error) {
	return m.Score, nil
}

// AnalyzeEffectiveness re-scores every implemented suggestion's confidence
// from its measured effectiveness: the new confidence is the mean of the old
// confidence and the effectiveness score, persisted through the suggestion
// store. Returns the number of suggestions processed.
func (e *Engine) AnalyzeEffectiveness(ctx context.Context) (int, error) {
	implemented, err := e.suggestions.GetSuggestions(ctx, StatusImplemented)
	if err != nil {
		return 0, fmt.Errorf("fetching implemented suggestions: %w", err)
	}

	analyzed := 0
	for _, s := range implemented {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		effectiveness, err := e.measurer.Measure(ctx, s)
		if err != nil {
			return 0, fmt.Errorf("measuring suggestion %s: %w", s.ID, err)
		}

		newConfidence := clampConfidence((s.Confidence + effectiveness) / 2)
		if err := e.suggestions.UpdateSuggestionConfidence(ctx, s.ID, newConfidence); err != nil {
			return 0, fmt.Errorf("updating confidence for %s: %w", s.ID, err)
		}
		analyzed++
	}

	return analyzed, nil
}
