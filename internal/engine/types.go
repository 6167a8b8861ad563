// Package engine implements the suggestion intelligence core: it expands
// recurring error patterns into candidate optimization suggestions, enriches
// them with confidence/effort/tag metadata, merges near-duplicates, ranks
// them by impact, groups them into themed campaigns, reacts to live system
// context, and recalibrates confidence from observed outcomes.
package engine

import "time"

// OptimizationType classifies what kind of change a suggestion proposes.
type OptimizationType string

const (
	TypeTestCase      OptimizationType = "TestCaseOptimization"
	TypeErrorHandling OptimizationType = "ErrorHandlingImprovement"
	TypeTimeout       OptimizationType = "TimeoutOptimization"
	TypeAssertion     OptimizationType = "AssertionImprovement"
	TypeArchitectural OptimizationType = "ArchitecturalImprovement"
	TypePerformance   OptimizationType = "PerformanceOptimization"
	TypeCodeQuality   OptimizationType = "CodeQualityImprovement"
)

// SuggestionStatus tracks a suggestion through its review lifecycle.
type SuggestionStatus string

const (
	StatusProposed    SuggestionStatus = "proposed"
	StatusApproved    SuggestionStatus = "approved"
	StatusImplemented SuggestionStatus = "implemented"
	StatusRejected    SuggestionStatus = "rejected"
)

// ErrorPattern is a recorded recurring failure signature. Patterns are owned
// by the detection subsystem; the engine only reads them.
type ErrorPattern struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory,omitempty"`
	Target          string    `json:"target,omitempty"`
	SeverityLevel   int       `json:"severity_level"`
	OccurrenceCount int       `json:"occurrence_count"`
	Confidence      float64   `json:"confidence"`
	LastSeenAt      time.Time `json:"last_seen_at"`
}

// Suggestion is a single proposed optimization tied to one error pattern.
type Suggestion struct {
	ID              string           `json:"id"`
	PatternID       string           `json:"pattern_id"`
	Type            OptimizationType `json:"type"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	TargetComponent string           `json:"target_component"`
	Priority        int              `json:"priority"`
	Confidence      float64          `json:"confidence"`

	// EffortHours is the estimated implementation effort. Zero means the
	// estimate has not been produced yet; the enricher fills it in.
	EffortHours float64 `json:"effort_hours,omitempty"`

	Tags      string           `json:"tags,omitempty"`
	Status    SuggestionStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// Campaign is a themed bundle of suggestions meant to be implemented
// together, with a phased rollout plan.
type Campaign struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Theme            string          `json:"theme"`
	Priority         int             `json:"priority"`
	EstimatedImpact  float64         `json:"estimated_impact"`
	Confidence       float64         `json:"confidence"`
	EffortHours      float64         `json:"effort_hours"`
	Suggestions      []Suggestion    `json:"suggestions"`
	ExpectedOutcomes []string        `json:"expected_outcomes"`
	SuccessMetrics   []string        `json:"success_metrics"`
	Phases           []CampaignPhase `json:"phases"`
}

// CampaignPhase is an effort-bucketed subset of a campaign's suggestions
// with ordering prerequisites.
type CampaignPhase struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	SuggestionIDs []string      `json:"suggestion_ids"`
	Duration      time.Duration `json:"duration"`
	Prerequisites []string      `json:"prerequisites,omitempty"`
	Deliverables  []string      `json:"deliverables"`
}

// CategoryCount pairs an error category with its recent occurrence count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ErrorTrends is a snapshot of recent error-rate movement.
type ErrorTrends struct {
	CurrentErrorRate   float64         `json:"current_error_rate"`
	ErrorRateOneDayAgo float64         `json:"error_rate_one_day_ago"`
	RecentCategories   []CategoryCount `json:"recent_categories,omitempty"`
}

// SystemLoad is a snapshot of resource utilization.
type SystemLoad struct {
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	AvgResponseTimeMS float64 `json:"avg_response_time_ms"`
}

// BusinessContext carries calendar signals relevant to scheduling work.
type BusinessContext struct {
	MaintenanceWindow bool `json:"maintenance_window"`
}

// ResourceAvailability describes how much engineering capacity is free.
type ResourceAvailability struct {
	DevelopmentCapacityHours float64 `json:"development_capacity_hours"`
}

// SystemContext is a point-in-time snapshot of live signals used to drive
// reactive suggestion generation. It is an input only; the engine never
// persists it.
type SystemContext struct {
	Environment string               `json:"environment"`
	ErrorTrends ErrorTrends          `json:"error_trends"`
	SystemLoad  SystemLoad           `json:"system_load"`
	Business    BusinessContext      `json:"business"`
	Resources   ResourceAvailability `json:"resources"`
}

// clampConfidence bounds a confidence score to [0, 1].
func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// clampPriority bounds a priority to [1, 5].
func clampPriority(p int) int {
	if p < 1 {
		return 1
	}
	if p > 5 {
		return 5
	}
	return p
}
