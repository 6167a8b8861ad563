package engine

import (
	"context"
	"math"
	"testing"
	"time"
)

type fakeRateHistory struct {
	samples []RateSample
}

func (f *fakeRateHistory) GetRateSamples(ctx context.Context, patternID string, from, to time.Time) ([]RateSample, error) {
	var out []RateSample
	for _, s := range f.samples {
		if s.PatternID != patternID {
			continue
		}
		if s.ObservedAt.Before(from) || !s.ObservedAt.Before(to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeClock struct {
	at time.Time
}

func (f *fakeClock) ImplementedAt(ctx context.Context, suggestionID string) (time.Time, error) {
	return f.at, nil
}

func sampleSeries(patternID string, start time.Time, step time.Duration, rates ...float64) []RateSample {
	out := make([]RateSample, len(rates))
	for i, r := range rates {
		out[i] = RateSample{PatternID: patternID, Rate: r, ObservedAt: start.Add(time.Duration(i) * step)}
	}
	return out
}

func TestDeltaMeasurer_UnknownImplementationTime(t *testing.T) {
	m := &DeltaMeasurer{History: &fakeRateHistory{}, Clock: &fakeClock{}}

	got, err := m.Measure(context.Background(), Suggestion{ID: "s1", PatternID: "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.8 {
		t.Errorf("expected neutral-positive 0.8, got %f", got)
	}
}

func TestDeltaMeasurer_InsufficientSamples(t *testing.T) {
	implementedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	history := &fakeRateHistory{
		samples: sampleSeries("p1", implementedAt.Add(-time.Hour), time.Minute, 10, 12), // only 2 before
	}
	m := &DeltaMeasurer{History: history, Clock: &fakeClock{at: implementedAt}}

	got, err := m.Measure(context.Background(), Suggestion{ID: "s1", PatternID: "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.8 {
		t.Errorf("expected fallback 0.8 with too few samples, got %f", got)
	}
}

func TestDeltaMeasurer_Improvement(t *testing.T) {
	implementedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var samples []RateSample
	samples = append(samples, sampleSeries("p1", implementedAt.Add(-time.Hour), time.Minute, 10, 10, 10)...)
	samples = append(samples, sampleSeries("p1", implementedAt.Add(time.Minute), time.Minute, 5, 5, 5)...)

	m := &DeltaMeasurer{History: &fakeRateHistory{samples: samples}, Clock: &fakeClock{at: implementedAt}}

	got, err := m.Measure(context.Background(), Suggestion{ID: "s1", PatternID: "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Rate halved: 0.5 + (0.5/2) = 0.75.
	if math.Abs(got-0.75) > 1e-9 {
		t.Errorf("expected 0.75 for a halved error rate, got %f", got)
	}
}

func TestDeltaMeasurer_Regression(t *testing.T) {
	implementedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var samples []RateSample
	samples = append(samples, sampleSeries("p1", implementedAt.Add(-time.Hour), time.Minute, 10, 10, 10)...)
	samples = append(samples, sampleSeries("p1", implementedAt.Add(time.Minute), time.Minute, 25, 25, 25)...)

	m := &DeltaMeasurer{History: &fakeRateHistory{samples: samples}, Clock: &fakeClock{at: implementedAt}}

	got, err := m.Measure(context.Background(), Suggestion{ID: "s1", PatternID: "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Rate more than doubled; score clamps at 0.
	if got != 0 {
		t.Errorf("expected 0 for a severe regression, got %f", got)
	}
}

func TestDeltaMeasurer_Eliminated(t *testing.T) {
	implementedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var samples []RateSample
	samples = append(samples, sampleSeries("p1", implementedAt.Add(-time.Hour), time.Minute, 8, 8, 8)...)
	samples = append(samples, sampleSeries("p1", implementedAt.Add(time.Minute), time.Minute, 0, 0, 0)...)

	m := &DeltaMeasurer{History: &fakeRateHistory{samples: samples}, Clock: &fakeClock{at: implementedAt}}

	got, err := m.Measure(context.Background(), Suggestion{ID: "s1", PatternID: "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 for a fully eliminated error rate, got %f", got)
	}
}

func TestScoreDelta_ZeroBaseline(t *testing.T) {
	if got := scoreDelta(0, 0); got != 0.5 {
		t.Errorf("expected 0.5 for no change at zero, got %f", got)
	}
	if got := scoreDelta(0, 5); got != 0 {
		t.Errorf("expected 0 for new errors from a clean baseline, got %f", got)
	}
}
