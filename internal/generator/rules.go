package generator

import (
	"fmt"

	"github.com/ridgeline-systems/optwatch/internal/engine"
)

// Rule examines one error pattern and produces zero or more raw
// suggestions. Rules set type, title, description, target, priority, and a
// seed confidence; ids and status are stamped by the generator.
type Rule func(p engine.ErrorPattern) []engine.Suggestion

// targetOr returns the pattern's target component, or the fallback when the
// pattern does not name one.
func targetOr(p engine.ErrorPattern, fallback string) string {
	if p.Target != "" {
		return p.Target
	}
	return fallback
}

func capConfidence(c, max float64) float64 {
	if c > max {
		return max
	}
	return c
}

func capPriority(p int) int {
	if p > 5 {
		return 5
	}
	return p
}

// NetworkTimeoutTests suggests raising test timeouts when network timeout
// patterns recur.
func NetworkTimeoutTests(p engine.ErrorPattern) []engine.Suggestion {
	if p.Category != "Network" || p.Subcategory != "Timeout" {
		return nil
	}
	target := targetOr(p, "Network Operations")
	return []engine.Suggestion{{
		Type:  engine.TypeTestCase,
		Title: "Increase test timeout for network operations",
		Description: fmt.Sprintf(
			"Tests for %s are timing out frequently. Increase the timeout from the default to account for network latency.",
			target,
		),
		TargetComponent: target,
		Priority:        p.SeverityLevel,
		Confidence:      capConfidence(p.Confidence+0.1, 0.9),
	}}
}

// TestIsolation flags likely test-isolation problems behind frequent
// general errors.
func TestIsolation(p engine.ErrorPattern) []engine.Suggestion {
	if p.OccurrenceCount <= 10 || p.Category != "General" {
		return nil
	}
	return []engine.Suggestion{{
		Type:            engine.TypeTestCase,
		Title:           "Review test isolation for parallel execution",
		Description:     "Frequent errors may indicate test isolation issues when running in parallel. Review shared state, static variables, and resource contention.",
		TargetComponent: targetOr(p, "Test Framework"),
		Priority:        3,
		Confidence:      p.Confidence * 0.8,
	}}
}

// RateLimitHandling suggests retry with backoff for rate-limited endpoints.
func RateLimitHandling(p engine.ErrorPattern) []engine.Suggestion {
	if p.Category != "HTTP" || p.Subcategory != "RateLimit" {
		return nil
	}
	target := targetOr(p, "HTTP Client")
	return []engine.Suggestion{{
		Type:  engine.TypeErrorHandling,
		Title: "Implement retry logic with exponential backoff",
		Description: fmt.Sprintf(
			"%s frequently returns 429 (Too Many Requests). Add exponential backoff with jitter and respect Retry-After headers.",
			target,
		),
		TargetComponent: target,
		Priority:        4,
		Confidence:      capConfidence(p.Confidence+0.2, 0.95),
	}}
}

// ServerErrorHandling suggests a circuit breaker for recurring 5xx errors.
func ServerErrorHandling(p engine.ErrorPattern) []engine.Suggestion {
	if p.Category != "HTTP" || p.Subcategory != "ServerError" {
		return nil
	}
	target := targetOr(p, "API Client")
	return []engine.Suggestion{{
		Type:  engine.TypeErrorHandling,
		Title: "Add circuit breaker pattern for server errors",
		Description: fmt.Sprintf(
			"Frequent server errors (5xx) from %s. A circuit breaker with a configurable failure threshold prevents cascade failures during outages.",
			target,
		),
		TargetComponent: target,
		Priority:        p.SeverityLevel,
		Confidence:      p.Confidence,
	}}
}

// TimeoutTuning suggests reviewing connection timeout settings for network
// timeout patterns.
func TimeoutTuning(p engine.ErrorPattern) []engine.Suggestion {
	if p.Category != "Network" || p.Subcategory != "Timeout" {
		return nil
	}
	target := targetOr(p, "Network Configuration")
	return []engine.Suggestion{{
		Type:  engine.TypeTimeout,
		Title: "Optimize connection timeout settings",
		Description: fmt.Sprintf(
			"Connection timeouts detected for %s. Configure connection and read timeout values appropriate to the endpoint's characteristics.",
			target,
		),
		TargetComponent: target,
		Priority:        capPriority(p.SeverityLevel + 1),
		Confidence:      p.Confidence,
	}}
}

// ValidationAssertions suggests more specific assertions when data
// validation errors recur.
func ValidationAssertions(p engine.ErrorPattern) []engine.Suggestion {
	if p.Category != "Data" || p.Subcategory != "ValidationError" {
		return nil
	}
	return []engine.Suggestion{{
		Type:            engine.TypeAssertion,
		Title:           "Improve test data validation assertions",
		Description:     "Validation errors suggest assertions could be more specific about expected data formats, ranges, and business rules.",
		TargetComponent: targetOr(p, "Test Assertions"),
		Priority:        2,
		Confidence:      p.Confidence * 0.7,
	}}
}

// PerformanceHotspot suggests profiling and optimizing components behind
// performance-category patterns.
func PerformanceHotspot(p engine.ErrorPattern) []engine.Suggestion {
	if p.Category != "Performance" {
		return nil
	}
	target := targetOr(p, "Hot Path")
	return []engine.Suggestion{{
		Type:  engine.TypePerformance,
		Title: fmt.Sprintf("Profile and optimize %s", target),
		Description: fmt.Sprintf(
			"Performance degradation recorded %d times for %s. Profile the component and optimize the dominant cost.",
			p.OccurrenceCount, target,
		),
		TargetComponent: target,
		Priority:        capPriority(p.SeverityLevel + 1),
		Confidence:      p.Confidence,
	}}
}

// ChronicArchitecture escalates chronic high-severity patterns to an
// architectural review.
func ChronicArchitecture(p engine.ErrorPattern) []engine.Suggestion {
	if p.SeverityLevel < 4 || p.OccurrenceCount < 5 {
		return nil
	}
	target := targetOr(p, "Core Architecture")
	return []engine.Suggestion{{
		Type:  engine.TypeArchitectural,
		Title: fmt.Sprintf("Rework failure-prone design around %s", target),
		Description: fmt.Sprintf(
			"A severity-%d pattern has recurred %d times. Point fixes have not held; the component's design should be revisited.",
			p.SeverityLevel, p.OccurrenceCount,
		),
		TargetComponent: target,
		Priority:        p.SeverityLevel,
		Confidence:      p.Confidence * 0.9,
	}}
}

// ErrorProneCleanup flags components accumulating many distinct failures
// for a code-quality pass.
func ErrorProneCleanup(p engine.ErrorPattern) []engine.Suggestion {
	if p.OccurrenceCount < 8 || p.Category != "General" {
		return nil
	}
	target := targetOr(p, "Error-Prone Module")
	return []engine.Suggestion{{
		Type:  engine.TypeCodeQuality,
		Title: fmt.Sprintf("Refactor error-prone code in %s", target),
		Description: fmt.Sprintf(
			"%s keeps producing errors (%d occurrences). A cleanup pass reducing complexity and tightening input handling should lower the baseline error rate.",
			target, p.OccurrenceCount,
		),
		TargetComponent: target,
		Priority:        3,
		Confidence:      p.Confidence * 0.75,
	}}
}
