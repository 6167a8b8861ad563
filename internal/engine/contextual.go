package engine

import (
	"context"
	"fmt"
)

// Trigger thresholds for contextual generation.
const (
	errorSpikeRatio    = 1.5
	highCPUPercent     = 80
	highMemoryPercent  = 85
	highResponseTimeMS = 2000

	urgentCategoryLimit     = 3
	urgentPatternsPerCat    = 2
	performancePatternLimit = 5
	maintenancePatternLimit = 10
	maintenanceMinEffort    = 8
)

// GenerateContextualSuggestions reacts to a live system-context snapshot.
// The error-spike, high-load, and maintenance-window triggers are
// independent and compose; their outputs are concatenated and then filtered
// by the available development capacity.
func (e *Engine) GenerateContextualSuggestions(ctx context.Context, sys *SystemContext) ([]Suggestion, error) {
	if sys == nil {
		return nil, ErrNoInput
	}

	var out []Suggestion

	if isErrorSpike(sys) {
		urgent, err := e.urgentErrorSuggestions(ctx, sys)
		if err != nil {
			return nil, err
		}
		out = append(out, urgent...)
	}

	if isHighLoad(sys) {
		perf, err := e.highLoadSuggestions(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, perf...)
	}

	if sys.Business.MaintenanceWindow {
		maint, err := e.maintenanceWindowSuggestions(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, maint...)
	}

	return filterByCapacity(out, sys.Resources), nil
}

// isErrorSpike reports whether the current error rate has grown past 1.5x
// the rate one day ago.
func isErrorSpike(sys *SystemContext) bool {
	return sys.ErrorTrends.CurrentErrorRate > sys.ErrorTrends.ErrorRateOneDayAgo*errorSpikeRatio
}

// isHighLoad reports whether any load signal crosses its threshold.
func isHighLoad(sys *SystemContext) bool {
	return sys.SystemLoad.CPUPercent > highCPUPercent ||
		sys.SystemLoad.MemoryPercent > highMemoryPercent ||
		sys.SystemLoad.AvgResponseTimeMS > highResponseTimeMS
}

// urgentErrorSuggestions covers the top recent error categories: up to two
// patterns per category, every resulting suggestion forced to maximum
// priority and tagged Urgent.
func (e *Engine) urgentErrorSuggestions(ctx context.Context, sys *SystemContext) ([]Suggestion, error) {
	var out []Suggestion

	categories := sys.ErrorTrends.RecentCategories
	if len(categories) > urgentCategoryLimit {
		categories = categories[:urgentCategoryLimit]
	}

	for _, cat := range categories {
		patterns, err := e.patterns.GetPatternsByCategory(ctx, cat.Category)
		if err != nil {
			return nil, fmt.Errorf("fetching %s patterns: %w", cat.Category, err)
		}
		if len(patterns) > urgentPatternsPerCat {
			patterns = patterns[:urgentPatternsPerCat]
		}

		for _, p := range patterns {
			suggestions, err := e.generator.GenerateForPattern(ctx, p.ID)
			if err != nil {
				return nil, fmt.Errorf("generating for pattern %s: %w", p.ID, err)
			}
			for i := range suggestions {
				suggestions[i].Priority = 5
				suggestions[i].Tags = prefixTags("Urgent", suggestions[i].Tags)
			}
			out = append(out, suggestions...)
		}
	}

	return out, nil
}

// highLoadSuggestions covers performance-category patterns, keeping only
// performance and timeout optimizations.
func (e *Engine) highLoadSuggestions(ctx context.Context) ([]Suggestion, error) {
	patterns, err := e.patterns.GetPatternsByCategory(ctx, "Performance")
	if err != nil {
		return nil, fmt.Errorf("fetching performance patterns: %w", err)
	}
	if len(patterns) > performancePatternLimit {
		patterns = patterns[:performancePatternLimit]
	}

	var out []Suggestion
	for _, p := range patterns {
		suggestions, err := e.generator.GenerateForPattern(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("generating for pattern %s: %w", p.ID, err)
		}
		for _, s := range suggestions {
			if s.Type != TypePerformance && s.Type != TypeTimeout {
				continue
			}
			s.Tags = prefixTags("Performance,HighLoad", s.Tags)
			out = append(out, s)
		}
	}

	return out, nil
}

// maintenanceWindowSuggestions covers patterns system-wide, keeping only
// architectural improvements and larger tasks that suit a maintenance
// window.
func (e *Engine) maintenanceWindowSuggestions(ctx context.Context) ([]Suggestion, error) {
	patterns, err := e.patterns.GetPatterns(ctx, PatternFilter{})
	if err != nil {
		return nil, fmt.Errorf("fetching patterns: %w", err)
	}
	if len(patterns) > maintenancePatternLimit {
		patterns = patterns[:maintenancePatternLimit]
	}

	var out []Suggestion
	for _, p := range patterns {
		suggestions, err := e.generator.GenerateForPattern(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("generating for pattern %s: %w", p.ID, err)
		}
		for _, s := range suggestions {
			if s.Type != TypeArchitectural && s.EffortHours <= maintenanceMinEffort {
				continue
			}
			s.Tags = prefixTags("MaintenanceWindow", s.Tags)
			out = append(out, s)
		}
	}

	return out, nil
}

// filterByCapacity drops suggestions whose effort exceeds the available
// development capacity.
func filterByCapacity(suggestions []Suggestion, resources ResourceAvailability) []Suggestion {
	out := suggestions[:0:0]
	for _, s := range suggestions {
		if s.EffortHours <= resources.DevelopmentCapacityHours {
			out = append(out, s)
		}
	}
	return out
}

// prefixTags prepends prefix to a comma-joined tag string.
func prefixTags(prefix, tags string) string {
	if tags == "" {
		return prefix
	}
	return prefix + "," + tags
}
