package output

import (
	"fmt"
	"strings"
)

// Section prints a styled section header with a horizontal rule sized to
// the render width.
func Section(title string) string {
	n := renderWidth - 14
	if n < 10 {
		n = 10
	}
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", n))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// ImpactBar renders a visual bar for a 0-1 impact or confidence score.
// Example: "████████░░ 0.80"
func ImpactBar(score float64, width int) string {
	if width <= 0 {
		width = 10
	}
	filled := int(score * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	styled := ConfidenceStyle(score).Render(bar)

	return fmt.Sprintf("%s %s", styled, StyleMuted.Render(fmt.Sprintf("%.2f", score)))
}

// PriorityBadge renders a 1-5 priority with urgency-scaled styling.
func PriorityBadge(priority int) string {
	return PriorityStyle(priority).Render(fmt.Sprintf("P%d", priority))
}
