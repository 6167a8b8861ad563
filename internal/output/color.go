// Package output provides styled terminal rendering helpers for optwatch.
package output

import "github.com/charmbracelet/lipgloss"

// Palette for suggestion rendering. Impact and urgency map onto the
// good/caution/bad trio; muted carries metadata.
var (
	ColorAccent  = lipgloss.Color("#7aa2f7")
	ColorGood    = lipgloss.Color("#9ece6a")
	ColorCaution = lipgloss.Color("#e0af68")
	ColorBad     = lipgloss.Color("#f7768e")
	ColorMuted   = lipgloss.Color("#565f89")
)

var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// StyleSuccess marks improvements, high impact, and implemented work.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorGood)

	// StyleWarning marks middling impact and approved-but-pending work.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorCaution)

	// StyleError marks regressions, urgent priorities, and rejections.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorBad)

	// StyleMuted is used for metadata and de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for suggestion and campaign titles.
	StyleBold = lipgloss.NewStyle().
			Bold(true)
)

// PriorityStyle returns the style for a 1-5 priority: urgent work reads
// red, elevated work amber, routine work muted.
func PriorityStyle(priority int) lipgloss.Style {
	switch {
	case priority >= 5:
		return StyleError
	case priority >= 4:
		return StyleWarning
	default:
		return StyleMuted
	}
}

// StatusStyle returns the style for a suggestion lifecycle status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "implemented":
		return StyleSuccess
	case "approved":
		return StyleWarning
	case "rejected":
		return StyleError
	default:
		return StyleMuted
	}
}

// ConfidenceStyle returns the style for a [0,1] confidence or impact score.
func ConfidenceStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.7:
		return StyleSuccess
	case score >= 0.4:
		return StyleWarning
	default:
		return StyleError
	}
}

// noColor tracks whether color output is disabled.
var noColor bool

// coloredStyles snapshots the styled renderers so color can be re-enabled.
var coloredStyles = []*lipgloss.Style{
	&StyleHeader, &StyleSuccess, &StyleWarning, &StyleError, &StyleMuted, &StyleBold,
}

var coloredSnapshot = func() []lipgloss.Style {
	snap := make([]lipgloss.Style, len(coloredStyles))
	for i, s := range coloredStyles {
		snap[i] = *s
	}
	return snap
}()

// SetNoColor disables or re-enables color output globally by swapping the
// package-level styles. PriorityStyle, StatusStyle, and ConfidenceStyle
// pick the change up since they return the package styles.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		for _, s := range coloredStyles {
			*s = plain
		}
		return
	}
	for i, s := range coloredStyles {
		*s = coloredSnapshot[i]
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}
