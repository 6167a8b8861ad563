package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
)

// Campaign structure limits used by the post-build optimization pass.
const (
	minCampaignMembers     = 2
	standaloneMemberCount  = 3
	standaloneImpactFloor  = 0.7
	mergeTargetMemberLimit = 8
)

// Effort buckets for implementation phases.
const (
	quickWinMaxHours = 4
	coreTaskMaxHours = 16
)

// BuildCampaigns partitions suggestions into themed campaigns with phased
// implementation plans, then optimizes the campaign structure: campaigns
// with fewer than two members are dropped, and small low-impact campaigns
// are merged into same-theme campaigns that still have room.
func BuildCampaigns(suggestions []Suggestion) []Campaign {
	groups := groupByTheme(suggestions)

	campaigns := make([]Campaign, 0, len(groups))
	for _, theme := range sortedThemes(groups) {
		campaigns = append(campaigns, newCampaign(theme, groups[theme]))
	}

	return optimizeStructure(campaigns)
}

// groupByTheme buckets suggestions by their type's campaign theme.
func groupByTheme(suggestions []Suggestion) map[string][]Suggestion {
	groups := make(map[string][]Suggestion)
	for _, s := range suggestions {
		theme := ThemeFor(s.Type)
		groups[theme] = append(groups[theme], s)
	}
	return groups
}

// sortedThemes returns the group keys in a stable order.
func sortedThemes(groups map[string][]Suggestion) []string {
	themes := make([]string, 0, len(groups))
	for t := range groups {
		themes = append(themes, t)
	}
	sort.Strings(themes)
	return themes
}

// newCampaign builds a campaign for one theme group.
func newCampaign(theme string, members []Suggestion) Campaign {
	maxPriority := 0
	var effort float64
	impacts := make([]float64, len(members))
	confidences := make([]float64, len(members))

	for i, s := range members {
		if s.Priority > maxPriority {
			maxPriority = s.Priority
		}
		effort += s.EffortHours
		impacts[i] = ImpactScore(s)
		confidences[i] = s.Confidence
	}

	meanImpact, _ := stats.Mean(impacts)
	meanConfidence, _ := stats.Mean(confidences)

	return Campaign{
		Name:             fmt.Sprintf("%s Optimization Campaign", theme),
		Description:      fmt.Sprintf("Coordinated optimization campaign focused on %s improvements", strings.ToLower(theme)),
		Theme:            theme,
		Priority:         maxPriority,
		EstimatedImpact:  meanImpact,
		Confidence:       meanConfidence,
		EffortHours:      effort,
		Suggestions:      append([]Suggestion(nil), members...),
		ExpectedOutcomes: outcomesFor(theme),
		SuccessMetrics:   metricsFor(theme),
		Phases:           buildPhases(members),
	}
}

// buildPhases partitions a campaign's suggestions into effort buckets. A
// phase is only created when its bucket is non-empty, and each later phase
// lists every earlier phase name as a prerequisite.
func buildPhases(members []Suggestion) []CampaignPhase {
	var quick, core, large []string
	for _, s := range members {
		switch {
		case s.EffortHours <= quickWinMaxHours:
			quick = append(quick, s.ID)
		case s.EffortHours <= coreTaskMaxHours:
			core = append(core, s.ID)
		default:
			large = append(large, s.ID)
		}
	}

	var phases []CampaignPhase

	if len(quick) > 0 {
		phases = append(phases, CampaignPhase{
			Name:          "Quick Wins",
			Description:   "Low-effort, high-impact optimizations",
			SuggestionIDs: quick,
			Duration:      2 * 24 * time.Hour,
			Deliverables:  []string{"Immediate improvements", "Foundation for larger optimizations"},
		})
	}

	if len(core) > 0 {
		phases = append(phases, CampaignPhase{
			Name:          "Core Improvements",
			Description:   "Medium-effort optimizations with significant impact",
			SuggestionIDs: core,
			Duration:      7 * 24 * time.Hour,
			Prerequisites: phaseNames(phases),
			Deliverables:  []string{"Core system improvements", "Performance enhancements"},
		})
	}

	if len(large) > 0 {
		phases = append(phases, CampaignPhase{
			Name:          "Architectural Enhancements",
			Description:   "High-effort, transformational improvements",
			SuggestionIDs: large,
			Duration:      14 * 24 * time.Hour,
			Prerequisites: phaseNames(phases),
			Deliverables:  []string{"Architectural improvements", "Long-term stability enhancements"},
		})
	}

	return phases
}

func phaseNames(phases []CampaignPhase) []string {
	if len(phases) == 0 {
		return nil
	}
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.Name
	}
	return names
}

// optimizeStructure drops undersized campaigns and merges small low-impact
// ones into same-theme campaigns that still have room, processing by
// descending estimated impact.
func optimizeStructure(campaigns []Campaign) []Campaign {
	viable := campaigns[:0:0]
	for _, c := range campaigns {
		if len(c.Suggestions) >= minCampaignMembers {
			viable = append(viable, c)
		}
	}

	sort.SliceStable(viable, func(i, j int) bool {
		return viable[i].EstimatedImpact > viable[j].EstimatedImpact
	})

	var out []Campaign
	for _, c := range viable {
		if len(c.Suggestions) >= standaloneMemberCount || c.EstimatedImpact > standaloneImpactFloor {
			out = append(out, c)
			continue
		}

		merged := false
		for i := range out {
			if out[i].Theme == c.Theme && len(out[i].Suggestions) < mergeTargetMemberLimit {
				out[i] = mergeCampaigns(out[i], c)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, c)
		}
	}

	return out
}

// mergeCampaigns folds source into target: member lists union (no
// duplicates), effort sums, impact and confidence average, priority takes
// the max, and outcome/metric lists union.
func mergeCampaigns(target, source Campaign) Campaign {
	seen := make(map[string]bool, len(target.Suggestions))
	for _, s := range target.Suggestions {
		seen[s.ID] = true
	}
	for _, s := range source.Suggestions {
		if !seen[s.ID] {
			target.Suggestions = append(target.Suggestions, s)
			seen[s.ID] = true
		}
	}

	target.EffortHours += source.EffortHours
	target.EstimatedImpact = (target.EstimatedImpact + source.EstimatedImpact) / 2
	target.Confidence = (target.Confidence + source.Confidence) / 2
	if source.Priority > target.Priority {
		target.Priority = source.Priority
	}
	target.ExpectedOutcomes = unionStrings(target.ExpectedOutcomes, source.ExpectedOutcomes)
	target.SuccessMetrics = unionStrings(target.SuccessMetrics, source.SuccessMetrics)
	target.Phases = buildPhases(target.Suggestions)

	return target
}

// unionStrings appends items from extra that are not already in base,
// preserving order.
func unionStrings(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			base = append(base, s)
			seen[s] = true
		}
	}
	return base
}
