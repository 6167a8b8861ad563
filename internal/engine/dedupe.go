package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Similarity thresholds for considering two suggestions near-duplicates.
const (
	titleSimilarityThreshold       = 0.7
	descriptionSimilarityThreshold = 0.6
)

// consolidatedNote matches the annotation appended to merged descriptions.
// Similarity is always computed with the note stripped so that re-running
// deduplication on an already-merged set compares the original text and
// stays a no-op.
var consolidatedNote = regexp.MustCompile(`\s*\(Consolidated from \d+ similar suggestions\)$`)

// Deduplicate merges near-duplicate suggestions: same type, same target
// component, and either title similarity above 0.7 or description similarity
// above 0.6. All members of a duplicate group are folded into the first one
// encountered; survivors keep their first-occurrence order. The operation is
// idempotent and does not modify the input slice.
func Deduplicate(suggestions []Suggestion) []Suggestion {
	var out []Suggestion
	consumed := make(map[string]bool, len(suggestions))

	for i, s := range suggestions {
		if consumed[s.ID] {
			continue
		}

		var group []Suggestion
		for _, other := range suggestions[i+1:] {
			if consumed[other.ID] {
				continue
			}
			if areSimilar(s, other) {
				group = append(group, other)
			}
		}

		if len(group) > 0 {
			merged := mergeGroup(s, group)
			out = append(out, merged)
			consumed[s.ID] = true
			for _, g := range group {
				consumed[g.ID] = true
			}
		} else {
			out = append(out, s)
			consumed[s.ID] = true
		}
	}

	return out
}

// areSimilar reports whether two suggestions are near-duplicates.
func areSimilar(a, b Suggestion) bool {
	if a.Type != b.Type {
		return false
	}
	if a.TargetComponent != b.TargetComponent {
		return false
	}

	if Similarity(a.Title, b.Title) > titleSimilarityThreshold {
		return true
	}
	return Similarity(baseDescription(a), baseDescription(b)) > descriptionSimilarityThreshold
}

// baseDescription strips the consolidation note so comparisons always see
// the pre-merge text.
func baseDescription(s Suggestion) string {
	return consolidatedNote.ReplaceAllString(s.Description, "")
}

// mergeGroup folds a group of similar suggestions into the primary one:
// confidence becomes the mean of all members, priority the max, effort the
// sum, and the description is annotated with the member count.
func mergeGroup(primary Suggestion, group []Suggestion) Suggestion {
	total := primary.Confidence
	maxPriority := primary.Priority
	effort := primary.EffortHours

	for _, s := range group {
		total += s.Confidence
		if s.Priority > maxPriority {
			maxPriority = s.Priority
		}
		effort += s.EffortHours
	}

	primary.Confidence = clampConfidence(total / float64(len(group)+1))
	primary.Priority = maxPriority
	primary.EffortHours = effort
	primary.Description = strings.TrimSpace(baseDescription(primary)) +
		fmt.Sprintf(" (Consolidated from %d similar suggestions)", len(group)+1)

	return primary
}
