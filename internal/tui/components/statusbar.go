package components

import (
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left and the
// price data source on the right.
func RenderStatusBar(width int, keys, source string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + keys
	right := ""
	if source != "" {
		right = "RPP: " + source + " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
