package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrNoInput is returned when a required input collection is nil.
var ErrNoInput = errors.New("engine: input collection is nil")

// PatternFilter narrows a pattern store read. Zero values mean "no floor".
type PatternFilter struct {
	MinOccurrence int
	MinSeverity   int
	MinConfidence float64
	Category      string
}

// PatternStore provides read access to recorded error patterns.
type PatternStore interface {
	GetPatterns(ctx context.Context, filter PatternFilter) ([]ErrorPattern, error)
	GetPatternsByCategory(ctx context.Context, category string) ([]ErrorPattern, error)
}

// SuggestionStore provides read/write access to persisted suggestions.
type SuggestionStore interface {
	GetSuggestions(ctx context.Context, status SuggestionStatus) ([]Suggestion, error)
	UpdateSuggestionConfidence(ctx context.Context, id string, confidence float64) error
}

// Generator turns a single error pattern into zero or more raw suggestions.
type Generator interface {
	GenerateForPattern(ctx context.Context, patternID string) ([]Suggestion, error)
}

// Measurer scores how effective an implemented suggestion turned out to be,
// in [0, 1]. Implementations decide what "effective" means; the engine only
// blends the result into the suggestion's confidence.
type Measurer interface {
	Measure(ctx context.Context, s Suggestion) (float64, error)
}

// Options tunes engine behavior. The zero value is usable; missing fields
// fall back to the defaults below.
type Options struct {
	// Workers bounds the per-pattern generation pool.
	Workers int

	// Floors for the system-wide high-impact pattern fetch.
	MinOccurrence int
	MinSeverity   int
	MinConfidence float64
}

const (
	defaultWorkers       = 4
	defaultMinOccurrence = 3
	defaultMinSeverity   = 3
	defaultMinConfidence = 0.6
)

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.MinOccurrence <= 0 {
		o.MinOccurrence = defaultMinOccurrence
	}
	if o.MinSeverity <= 0 {
		o.MinSeverity = defaultMinSeverity
	}
	if o.MinConfidence <= 0 {
		o.MinConfidence = defaultMinConfidence
	}
	return o
}

// Engine is the suggestion intelligence core. All operations are bounded,
// request-scoped computations; any collaborator failure aborts the call and
// propagates to the caller.
type Engine struct {
	patterns    PatternStore
	suggestions SuggestionStore
	generator   Generator
	measurer    Measurer
	opts        Options
}

// New creates an engine from its collaborators. A nil measurer falls back
// to the neutral-positive constant measurer.
func New(patterns PatternStore, suggestions SuggestionStore, generator Generator, measurer Measurer, opts Options) *Engine {
	if measurer == nil {
		measurer = ConstantMeasurer{Score: defaultEffectiveness}
	}
	return &Engine{
		patterns:    patterns,
		suggestions: suggestions,
		generator:   generator,
		measurer:    measurer,
		opts:        opts.withDefaults(),
	}
}

// GenerateComprehensiveSuggestions expands the given patterns into enriched,
// deduplicated, impact-prioritized suggestions. Pattern-level generation
// runs on a bounded worker pool; enrichment, deduplication, and
// prioritization are single reduction passes over the full set.
func (e *Engine) GenerateComprehensiveSuggestions(ctx context.Context, patterns []ErrorPattern) ([]Suggestion, error) {
	if patterns == nil {
		return nil, ErrNoInput
	}

	raw, err := e.generateAll(ctx, patterns)
	if err != nil {
		return nil, err
	}

	enriched := Enrich(raw, patterns)
	deduped := Deduplicate(enriched)
	return PrioritizeByImpact(deduped), nil
}

// generateAll fans pattern-level generation out over a bounded pool and
// reassembles results in input order so downstream passes stay
// deterministic.
func (e *Engine) generateAll(ctx context.Context, patterns []ErrorPattern) ([]Suggestion, error) {
	results := make([][]Suggestion, len(patterns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for i, p := range patterns {
		i, p := i, p
		g.Go(func() error {
			suggestions, err := e.generator.GenerateForPattern(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("generating for pattern %s: %w", p.ID, err)
			}
			results[i] = suggestions
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Suggestion
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// GeneratePrioritizedSuggestions fetches high-impact patterns system-wide,
// runs the comprehensive pipeline, applies advanced prioritization, and
// returns the top maxCount suggestions.
func (e *Engine) GeneratePrioritizedSuggestions(ctx context.Context, maxCount int) ([]Suggestion, error) {
	patterns, err := e.patterns.GetPatterns(ctx, PatternFilter{
		MinOccurrence: e.opts.MinOccurrence,
		MinSeverity:   e.opts.MinSeverity,
		MinConfidence: e.opts.MinConfidence,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching high-impact patterns: %w", err)
	}
	if patterns == nil {
		patterns = []ErrorPattern{}
	}

	all, err := e.GenerateComprehensiveSuggestions(ctx, patterns)
	if err != nil {
		return nil, err
	}

	ranked := PrioritizeAdvanced(all)
	if maxCount > 0 && len(ranked) > maxCount {
		ranked = ranked[:maxCount]
	}
	return ranked, nil
}

// GroupIntoCampaigns partitions suggestions into themed campaigns with
// phased rollout plans.
func (e *Engine) GroupIntoCampaigns(suggestions []Suggestion) ([]Campaign, error) {
	if suggestions == nil {
		return nil, ErrNoInput
	}
	return BuildCampaigns(suggestions), nil
}
