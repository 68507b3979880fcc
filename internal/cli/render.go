package cli

import (
	"fmt"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// SeparatorRow marks a rule between table rows.
const SeparatorRow = "---"

type styles struct {
	title, header, value, muted, warn, dim lipgloss.Style
}

// currentStyles builds styles from the active theme so a theme set after
// startup still applies.
func currentStyles() styles {
	t := theme.Active
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary).Align(lipgloss.Center),
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		value:  lipgloss.NewStyle().Foreground(t.TextPrimary),
		muted:  lipgloss.NewStyle().Foreground(t.TextMuted),
		warn:   lipgloss.NewStyle().Foreground(t.Warn),
		dim:    lipgloss.NewStyle().Foreground(t.TextDim),
	}
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	s := currentStyles()
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(s.title.Render(title))
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned, the rest right-aligned. A row holding only
// SeparatorRow draws a rule.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	s := currentStyles()

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(s.header.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(s.dim.Render(left))
		for i, w := range widths {
			b.WriteString(s.dim.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(s.dim.Render(mid))
			}
		}
		b.WriteString(s.dim.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(s.dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(s.header.Render(" " + pad(h, widths[i], i > 0) + " "))
			if i < numCols-1 {
				b.WriteString(s.dim.Render("│"))
			}
		}
		b.WriteString(s.dim.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == SeparatorRow {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(s.dim.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(s.value.Render(" " + pad(cell, widths[i], i > 0) + " "))
			if i < numCols-1 {
				b.WriteString(s.dim.Render("│"))
			}
		}
		b.WriteString(s.dim.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// pad fits cell to width w by display width, so cells that already carry
// ANSI color align correctly.
func pad(cell string, w int, right bool) string {
	gap := w - lipgloss.Width(cell)
	if gap <= 0 {
		return cell
	}
	if right {
		return strings.Repeat(" ", gap) + cell
	}
	return cell + strings.Repeat(" ", gap)
}

// RenderHorizontalBar renders one labeled bar of a share chart.
func RenderHorizontalBar(label string, value, maxValue float64, labelWidth, maxWidth int) string {
	s := currentStyles()
	name := s.muted.Render(pad(label, labelWidth, false))
	if maxValue <= 0 || value <= 0 {
		return fmt.Sprintf("  %s", name)
	}
	barLen := int(value / maxValue * float64(maxWidth))
	if barLen < 1 {
		barLen = 1
	}
	bar := lipgloss.NewStyle().Foreground(theme.Active.Bar).Render(strings.Repeat("█", barLen))
	return fmt.Sprintf("  %s %s %s", name, bar, s.dim.Render(FormatPercent(value/maxValue)))
}

// RenderWarning renders a one-line warning for stderr.
func RenderWarning(msg string) string {
	return currentStyles().warn.Render("warning: " + msg)
}

// RenderNote renders muted explanatory text.
func RenderNote(msg string) string {
	return currentStyles().muted.Render(msg)
}
