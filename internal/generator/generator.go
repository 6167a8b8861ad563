// Package generator produces raw optimization suggestions from individual
// error patterns using built-in rules keyed on pattern characteristics.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-systems/optwatch/internal/engine"
)

// PatternSource resolves a pattern by id. A nil pattern (without error)
// means the pattern does not exist; generation degrades to an empty result.
type PatternSource interface {
	GetPattern(ctx context.Context, id string) (*engine.ErrorPattern, error)
}

// RuleBased generates suggestions by running every registered rule against
// the pattern. It implements engine.Generator.
type RuleBased struct {
	source PatternSource
	rules  []Rule
}

// New creates a rule-based generator with all built-in rules registered.
func New(source PatternSource) *RuleBased {
	return &RuleBased{
		source: source,
		rules: []Rule{
			NetworkTimeoutTests,
			TestIsolation,
			RateLimitHandling,
			ServerErrorHandling,
			TimeoutTuning,
			ValidationAssertions,
			PerformanceHotspot,
			ChronicArchitecture,
			ErrorProneCleanup,
		},
	}
}

// GenerateForPattern runs all rules against the identified pattern and
// returns the collected suggestions, stamped with fresh ids and the
// proposed status. An unknown pattern id yields an empty result.
func (g *RuleBased) GenerateForPattern(ctx context.Context, patternID string) ([]engine.Suggestion, error) {
	pattern, err := g.source.GetPattern(ctx, patternID)
	if err != nil {
		return nil, fmt.Errorf("resolving pattern %s: %w", patternID, err)
	}
	if pattern == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	var out []engine.Suggestion
	for _, rule := range g.rules {
		for _, s := range rule(*pattern) {
			s.ID = uuid.New().String()
			s.PatternID = pattern.ID
			s.Status = engine.StatusProposed
			s.CreatedAt = now
			out = append(out, s)
		}
	}

	return out, nil
}
