package engine

import (
	"fmt"
	"strings"
)

// Campaign themes.
const (
	ThemeTestingQuality  = "Testing Quality"
	ThemeErrorResilience = "Error Resilience"
	ThemePerformance     = "Performance"
	ThemeArchitecture    = "Architecture"
	ThemeCodeQuality     = "Code Quality"
	ThemeGeneral         = "General Improvements"
)

// themeByType maps each optimization type to its campaign theme.
var themeByType = map[OptimizationType]string{
	TypeTestCase:      ThemeTestingQuality,
	TypeAssertion:     ThemeTestingQuality,
	TypeErrorHandling: ThemeErrorResilience,
	TypeTimeout:       ThemePerformance,
	TypePerformance:   ThemePerformance,
	TypeArchitectural: ThemeArchitecture,
	TypeCodeQuality:   ThemeCodeQuality,
}

// ThemeFor returns the campaign theme for a suggestion's type.
func ThemeFor(t OptimizationType) string {
	if theme, ok := themeByType[t]; ok {
		return theme
	}
	return ThemeGeneral
}

// expectedOutcomes holds the fixed narrative outcome list per theme.
var expectedOutcomes = map[string][]string{
	ThemeTestingQuality: {
		"Reduced test flakiness and false positives",
		"Improved test coverage and reliability",
		"Faster feedback loop for developers",
	},
	ThemeErrorResilience: {
		"Reduced system downtime and error rates",
		"Better error recovery and user experience",
		"Improved system stability under load",
	},
	ThemePerformance: {
		"Reduced response times and resource usage",
		"Improved scalability and throughput",
		"Better user experience and satisfaction",
	},
}

// successMetrics holds the fixed quantitative target list per theme.
var successMetrics = map[string][]string{
	ThemeTestingQuality: {
		"Test success rate > 95%",
		"Test execution time reduction > 20%",
		"False positive rate < 5%",
	},
	ThemeErrorResilience: {
		"Error rate reduction > 50%",
		"Mean time to recovery < 5 minutes",
		"System uptime > 99.9%",
	},
	ThemePerformance: {
		"Response time improvement > 30%",
		"CPU utilization reduction > 15%",
		"Memory usage optimization > 20%",
	},
}

// outcomesFor returns the theme's outcome list, or a generic fallback.
func outcomesFor(theme string) []string {
	if o, ok := expectedOutcomes[theme]; ok {
		return append([]string(nil), o...)
	}
	return []string{fmt.Sprintf("Improved %s across the system", strings.ToLower(theme))}
}

// metricsFor returns the theme's metric list, or a generic fallback.
func metricsFor(theme string) []string {
	if m, ok := successMetrics[theme]; ok {
		return append([]string(nil), m...)
	}
	return []string{fmt.Sprintf("%s improvement metrics to be defined", theme)}
}
