package components

import (
	"fmt"

	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders a labeled bar showing what fraction of the total one
// category takes, followed by its amount.
func ShareBar(label, amount string, share float64, labelW, barWidth int) string {
	t := theme.Active
	share = clamp01(share)

	bar := progress.New(
		progress.WithSolidFill(string(t.Bar)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(share) + " " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", share*100)) + "  " +
		amountStyle.Render(amount)
}

// StepBar renders one multiplier step: a bar scaled to the largest step and
// colored by whether it raised or lowered the estimate.
func StepBar(label, amount string, value, maxAbs float64, labelW, barWidth int) string {
	t := theme.Active
	ratio := 0.0
	if maxAbs > 0 {
		ratio = clamp01(abs(value) / maxAbs)
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Delta(value))),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Surface)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amountStyle := lipgloss.NewStyle().Foreground(t.Delta(value))

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(ratio) + " " +
		amountStyle.Render(amount)
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
