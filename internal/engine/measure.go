package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
)

// RateSample is one error-rate observation for a pattern.
type RateSample struct {
	PatternID  string    `json:"pattern_id"`
	Rate       float64   `json:"rate"`
	ObservedAt time.Time `json:"observed_at"`
}

// RateHistory provides error-rate observations for a pattern within a time
// range.
type RateHistory interface {
	GetRateSamples(ctx context.Context, patternID string, from, to time.Time) ([]RateSample, error)
}

// ImplementationClock reports when a suggestion was marked implemented.
// A zero time means the implementation moment is unknown.
type ImplementationClock interface {
	ImplementedAt(ctx context.Context, suggestionID string) (time.Time, error)
}

// DeltaMeasurer scores effectiveness from the error-rate movement of the
// suggestion's source pattern around the implementation moment: the mean
// rate in the window before is compared to the mean rate after. Too few
// samples on either side degrades to the neutral-positive constant.
type DeltaMeasurer struct {
	History RateHistory
	Clock   ImplementationClock

	// Window is how far to look on each side of the implementation moment.
	Window time.Duration

	// MinSamples is the minimum observation count per side.
	MinSamples int
}

const (
	defaultMeasureWindow  = 7 * 24 * time.Hour
	defaultMinRateSamples = 3
)

// Measure implements Measurer.
func (m *DeltaMeasurer) Measure(ctx context.Context, s Suggestion) (float64, error) {
	window := m.Window
	if window <= 0 {
		window = defaultMeasureWindow
	}
	minSamples := m.MinSamples
	if minSamples <= 0 {
		minSamples = defaultMinRateSamples
	}

	implementedAt, err := m.Clock.ImplementedAt(ctx, s.ID)
	if err != nil {
		return 0, fmt.Errorf("resolving implementation time: %w", err)
	}
	if implementedAt.IsZero() {
		return defaultEffectiveness, nil
	}

	before, err := m.History.GetRateSamples(ctx, s.PatternID, implementedAt.Add(-window), implementedAt)
	if err != nil {
		return 0, fmt.Errorf("fetching before samples: %w", err)
	}
	after, err := m.History.GetRateSamples(ctx, s.PatternID, implementedAt, implementedAt.Add(window))
	if err != nil {
		return 0, fmt.Errorf("fetching after samples: %w", err)
	}

	if len(before) < minSamples || len(after) < minSamples {
		return defaultEffectiveness, nil
	}

	beforeMean, err := stats.Mean(rates(before))
	if err != nil {
		return defaultEffectiveness, nil
	}
	afterMean, err := stats.Mean(rates(after))
	if err != nil {
		return defaultEffectiveness, nil
	}

	return scoreDelta(beforeMean, afterMean), nil
}

func rates(samples []RateSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Rate
	}
	return out
}

// scoreDelta maps a before/after mean error rate into [0, 1]: 0.5 means no
// change, 1.0 means the error rate fully disappeared, 0.0 means it at least
// doubled.
func scoreDelta(before, after float64) float64 {
	if before <= 0 {
		if after <= 0 {
			return 0.5
		}
		return 0
	}

	improvement := (before - after) / before
	return clampConfidence(0.5 + improvement/2)
}
