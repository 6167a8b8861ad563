package engine

import (
	"math"
	"sort"
)

// ImpactScore derives a [0,1] ranking value from a suggestion:
//
//	(priority/5) * confidence * (1 - min(0.5, effort/40))
//
// where effort is EffortHours, substituting 1 when the estimate is absent
// (EffortHours == 0) so unestimated work is not scored as free.
func ImpactScore(s Suggestion) float64 {
	effort := s.EffortHours
	if effort == 0 {
		effort = 1
	}
	penalty := math.Min(0.5, effort/40)
	return (float64(s.Priority) / 5) * s.Confidence * (1 - penalty)
}

// PrioritizeByImpact sorts suggestions descending by impact score, breaking
// ties by descending confidence and then ascending effort. Suggestions with
// no effort estimate sort last among equals. The input is not modified.
func PrioritizeByImpact(suggestions []Suggestion) []Suggestion {
	out := make([]Suggestion, len(suggestions))
	copy(out, suggestions)

	sort.SliceStable(out, func(i, j int) bool {
		ii, ij := ImpactScore(out[i]), ImpactScore(out[j])
		if ii != ij {
			return ii > ij
		}
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return sortEffort(out[i]) < sortEffort(out[j])
	})

	return out
}

// sortEffort returns the effort used for tie-breaking; a missing estimate
// sorts after any concrete one.
func sortEffort(s Suggestion) float64 {
	if s.EffortHours == 0 {
		return math.MaxFloat64
	}
	return s.EffortHours
}

// comprehensivePriorityScore blends impact, urgency, feasibility, and
// confidence into a single [0,1] score: impact 40%, urgency 30%,
// feasibility 20%, confidence 10%.
func comprehensivePriorityScore(s Suggestion) float64 {
	effort := s.EffortHours
	if effort == 0 {
		effort = 1
	}

	impact := ImpactScore(s)
	urgency := float64(s.Priority) / 5
	feasibility := 1 - math.Min(0.8, effort/50)

	return impact*0.4 + urgency*0.3 + feasibility*0.2 + s.Confidence*0.1
}

// PrioritizeAdvanced recomputes each suggestion's priority from the
// comprehensive score, rescaled to the 1-5 range, and sorts descending by
// the new priority with confidence as the tie-break. Used for the top-N
// system-wide entry point. The input is not modified.
func PrioritizeAdvanced(suggestions []Suggestion) []Suggestion {
	out := make([]Suggestion, len(suggestions))
	copy(out, suggestions)

	for i := range out {
		score := comprehensivePriorityScore(out[i])
		out[i].Priority = clampPriority(int(math.Ceil(score * 5)))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Confidence > out[j].Confidence
	})

	return out
}
