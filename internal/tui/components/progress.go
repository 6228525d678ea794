package components

import (
	"fmt"

	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders how much of a maturity value is principal versus growth.
// The filled part is the invested share; the rest is gain.
func ShareBar(label string, invested, value float64, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if value > 0 {
		pct = max(0, min(1, invested/value))
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Green)
	bar.Full = '█'
	bar.Empty = '█'

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	investedStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	gainStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(pct) + " " +
		investedStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		labelStyle.Render(" / ") +
		gainStyle.Render(fmt.Sprintf("%3.0f%%", (1-pct)*100))
}

// ShareLegend explains the two ShareBar colors.
func ShareLegend() string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.Accent).Render("█ invested") + "  " +
		lipgloss.NewStyle().Foreground(t.Green).Render("█ gain")
}
