package engine

import "strings"

// baseEffortHours maps each optimization type to a baseline implementation
// effort. Kept as pure data so the estimate stays trivially testable.
var baseEffortHours = map[OptimizationType]float64{
	TypeTestCase:      4,
	TypeErrorHandling: 8,
	TypeTimeout:       2,
	TypeAssertion:     3,
	TypeArchitectural: 24,
	TypePerformance:   16,
}

// defaultEffortHours is used for types without a table entry.
const defaultEffortHours = 8

// Enrich returns a copy of the given suggestions with confidence recomputed
// from the source pattern, effort estimated where missing, and tags
// regenerated. The input slice is not modified.
func Enrich(suggestions []Suggestion, patterns []ErrorPattern) []Suggestion {
	byID := make(map[string]ErrorPattern, len(patterns))
	for _, p := range patterns {
		byID[p.ID] = p
	}

	out := make([]Suggestion, len(suggestions))
	for i, s := range suggestions {
		if p, ok := byID[s.PatternID]; ok {
			s.Confidence = enrichedConfidence(s, p)
		}
		if s.EffortHours == 0 {
			s.EffortHours = estimateEffort(s)
		}
		s.Tags = buildTags(s)
		out[i] = s
	}
	return out
}

// enrichedConfidence blends the suggestion's own confidence with its source
// pattern's confidence, an occurrence weight, and a severity weight, all
// averaged equally.
func enrichedConfidence(s Suggestion, p ErrorPattern) float64 {
	occurrenceWeight := float64(p.OccurrenceCount) / 10
	if occurrenceWeight > 1 {
		occurrenceWeight = 1
	}
	severityWeight := float64(p.SeverityLevel) / 5

	return clampConfidence((s.Confidence + p.Confidence + occurrenceWeight + severityWeight) / 4)
}

// estimateEffort produces an effort estimate from the per-type baseline,
// scaled up or down by how far the priority sits from the midpoint.
func estimateEffort(s Suggestion) float64 {
	base, ok := baseEffortHours[s.Type]
	if !ok {
		base = defaultEffortHours
	}
	return base * (1 + float64(s.Priority-3)*0.2)
}

// buildTags regenerates the comma-joined tag set from the suggestion's type,
// priority, confidence, and effort.
func buildTags(s Suggestion) string {
	tags := []string{string(s.Type)}

	switch {
	case s.Priority >= 4:
		tags = append(tags, "HighPriority")
	case s.Priority <= 2:
		tags = append(tags, "LowPriority")
	}

	switch {
	case s.Confidence >= 0.8:
		tags = append(tags, "HighConfidence")
	case s.Confidence <= 0.5:
		tags = append(tags, "LowConfidence")
	}

	switch {
	case s.EffortHours <= 4:
		tags = append(tags, "QuickWin")
	case s.EffortHours >= 20:
		tags = append(tags, "MajorProject")
	}

	return strings.Join(tags, ",")
}
