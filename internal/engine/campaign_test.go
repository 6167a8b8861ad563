package engine

import (
	"fmt"
	"testing"
	"time"
)

func TestBuildCampaigns_Completeness(t *testing.T) {
	// Every theme has at least two members, so nothing is dropped and every
	// suggestion lands in exactly one campaign.
	in := []Suggestion{
		{ID: "t1", Type: TypeTestCase, Priority: 3, Confidence: 0.7, EffortHours: 4},
		{ID: "t2", Type: TypeAssertion, Priority: 2, Confidence: 0.6, EffortHours: 3},
		{ID: "p1", Type: TypePerformance, Priority: 4, Confidence: 0.8, EffortHours: 16},
		{ID: "p2", Type: TypeTimeout, Priority: 3, Confidence: 0.7, EffortHours: 2},
		{ID: "e1", Type: TypeErrorHandling, Priority: 4, Confidence: 0.8, EffortHours: 8},
		{ID: "e2", Type: TypeErrorHandling, Priority: 3, Confidence: 0.6, EffortHours: 8},
	}

	campaigns := BuildCampaigns(in)

	seen := make(map[string]int)
	for _, c := range campaigns {
		for _, s := range c.Suggestions {
			seen[s.ID]++
		}
	}

	for _, s := range in {
		if seen[s.ID] != 1 {
			t.Errorf("suggestion %s appears %d times, expected exactly 1", s.ID, seen[s.ID])
		}
	}
}

func TestBuildCampaigns_ThemeGrouping(t *testing.T) {
	in := make([]Suggestion, 5)
	for i := range in {
		in[i] = Suggestion{
			ID:       fmt.Sprintf("a%d", i),
			Type:     TypeArchitectural,
			Priority: 3, Confidence: 0.7, EffortHours: 24,
		}
	}

	campaigns := BuildCampaigns(in)
	if len(campaigns) != 1 {
		t.Fatalf("expected 1 campaign, got %d", len(campaigns))
	}
	c := campaigns[0]
	if c.Theme != ThemeArchitecture {
		t.Errorf("expected theme %q, got %q", ThemeArchitecture, c.Theme)
	}
	if len(c.Suggestions) != 5 {
		t.Errorf("expected 5 members, got %d", len(c.Suggestions))
	}
	if c.Name != "Architecture Optimization Campaign" {
		t.Errorf("unexpected campaign name %q", c.Name)
	}
}

func TestBuildCampaigns_AggregatesMembers(t *testing.T) {
	in := []Suggestion{
		{ID: "p1", Type: TypePerformance, Priority: 4, Confidence: 0.8, EffortHours: 16},
		{ID: "p2", Type: TypeTimeout, Priority: 2, Confidence: 0.6, EffortHours: 2},
	}

	campaigns := BuildCampaigns(in)
	if len(campaigns) != 1 {
		t.Fatalf("expected 1 campaign, got %d", len(campaigns))
	}
	c := campaigns[0]
	if c.Priority != 4 {
		t.Errorf("expected max priority 4, got %d", c.Priority)
	}
	if c.EffortHours != 18 {
		t.Errorf("expected effort sum 18, got %f", c.EffortHours)
	}
	wantConf := (0.8 + 0.6) / 2
	if diff := c.Confidence - wantConf; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected mean confidence %f, got %f", wantConf, c.Confidence)
	}
}

func TestBuildCampaigns_DropsSingletons(t *testing.T) {
	in := []Suggestion{
		{ID: "solo", Type: TypeCodeQuality, Priority: 3, Confidence: 0.7, EffortHours: 4},
		{ID: "e1", Type: TypeErrorHandling, Priority: 3, Confidence: 0.7, EffortHours: 8},
		{ID: "e2", Type: TypeErrorHandling, Priority: 3, Confidence: 0.7, EffortHours: 8},
	}

	campaigns := BuildCampaigns(in)
	for _, c := range campaigns {
		if c.Theme == ThemeCodeQuality {
			t.Errorf("expected single-member Code Quality campaign dropped")
		}
	}
}

func TestBuildPhases_EffortBuckets(t *testing.T) {
	members := []Suggestion{
		{ID: "quick", EffortHours: 3},
		{ID: "core", EffortHours: 10},
		{ID: "large", EffortHours: 24},
	}

	phases := buildPhases(members)
	if len(phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(phases))
	}

	if phases[0].Name != "Quick Wins" || phases[0].SuggestionIDs[0] != "quick" {
		t.Errorf("unexpected first phase: %+v", phases[0])
	}
	if phases[1].Name != "Core Improvements" || phases[1].SuggestionIDs[0] != "core" {
		t.Errorf("unexpected second phase: %+v", phases[1])
	}
	if phases[2].Name != "Architectural Enhancements" || phases[2].SuggestionIDs[0] != "large" {
		t.Errorf("unexpected third phase: %+v", phases[2])
	}

	if phases[0].Duration != 2*24*time.Hour {
		t.Errorf("expected 2-day quick phase, got %s", phases[0].Duration)
	}
	if phases[2].Duration != 14*24*time.Hour {
		t.Errorf("expected 14-day architectural phase, got %s", phases[2].Duration)
	}
}

func TestBuildPhases_Prerequisites(t *testing.T) {
	members := []Suggestion{
		{ID: "quick", EffortHours: 2},
		{ID: "core", EffortHours: 12},
		{ID: "large", EffortHours: 30},
	}

	phases := buildPhases(members)

	if len(phases[0].Prerequisites) != 0 {
		t.Errorf("first phase should have no prerequisites, got %v", phases[0].Prerequisites)
	}
	if len(phases[1].Prerequisites) != 1 || phases[1].Prerequisites[0] != "Quick Wins" {
		t.Errorf("expected second phase to require Quick Wins, got %v", phases[1].Prerequisites)
	}
	if len(phases[2].Prerequisites) != 2 {
		t.Errorf("expected third phase to require both earlier phases, got %v", phases[2].Prerequisites)
	}
}

func TestBuildPhases_SkipsEmptyBuckets(t *testing.T) {
	members := []Suggestion{
		{ID: "large1", EffortHours: 20},
		{ID: "large2", EffortHours: 30},
	}

	phases := buildPhases(members)
	if len(phases) != 1 {
		t.Fatalf("expected single phase, got %d", len(phases))
	}
	if phases[0].Name != "Architectural Enhancements" {
		t.Errorf("expected architectural phase, got %q", phases[0].Name)
	}
	if len(phases[0].Prerequisites) != 0 {
		t.Errorf("only phase should have no prerequisites, got %v", phases[0].Prerequisites)
	}
}

func TestMergeCampaigns_Conservation(t *testing.T) {
	a := newCampaign(ThemePerformance, []Suggestion{
		{ID: "p1", Type: TypePerformance, Priority: 3, Confidence: 0.6, EffortHours: 10},
		{ID: "p2", Type: TypeTimeout, Priority: 4, Confidence: 0.8, EffortHours: 2},
	})
	b := newCampaign(ThemePerformance, []Suggestion{
		{ID: "p3", Type: TypePerformance, Priority: 5, Confidence: 0.9, EffortHours: 16},
	})

	merged := mergeCampaigns(a, b)

	if len(merged.Suggestions) != 3 {
		t.Errorf("expected 3 members after merge, got %d", len(merged.Suggestions))
	}
	if merged.EffortHours != a.EffortHours+b.EffortHours {
		t.Errorf("expected effort sum %f, got %f", a.EffortHours+b.EffortHours, merged.EffortHours)
	}
	if merged.Priority != 5 {
		t.Errorf("expected max priority 5, got %d", merged.Priority)
	}
	if len(merged.Phases) == 0 {
		t.Errorf("expected phases rebuilt after merge")
	}
}

func TestMergeCampaigns_NoDuplicateMembers(t *testing.T) {
	shared := Suggestion{ID: "shared", Type: TypePerformance, Priority: 3, Confidence: 0.7, EffortHours: 4}
	a := newCampaign(ThemePerformance, []Suggestion{shared, {ID: "p1", Type: TypeTimeout, Priority: 2, Confidence: 0.5, EffortHours: 2}})
	b := newCampaign(ThemePerformance, []Suggestion{shared})

	merged := mergeCampaigns(a, b)
	count := 0
	for _, s := range merged.Suggestions {
		if s.ID == "shared" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected shared member once, got %d", count)
	}
}
