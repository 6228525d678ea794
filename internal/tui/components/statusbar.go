package components

import (
	"strings"

	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the current parameters on the right. A non-empty flash replaces the hints.
func RenderStatusBar(width int, params, flash string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " +/- amount  [/] years  [e]dit  [?]help  [q]uit"
	if flash != "" {
		left = " " + lipgloss.NewStyle().Foreground(t.Yellow).Render(flash)
	}
	right := params + " "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
