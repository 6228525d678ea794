package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/cli"
	"github.com/theirongolddev/sipcalc/internal/tui/components"
	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// scheduleWindow returns the visible slice [start, end) of schedule rows for
// a table that may show at most visible rows, starting near scroll.
func scheduleWindow(total, scroll, visible int) (start, end int) {
	visible = max(1, visible)
	start = max(0, min(scroll, total-visible))
	end = min(total, start+visible)
	return start, end
}

func (a App) renderScheduleTab(cw, h int) string {
	t := theme.Active
	p := a.proj

	headers := cli.ScheduleHeaders(p)
	rows := cli.ScheduleRows(p, a.currency)

	// Column widths come from every row so they stay put while scrolling.
	widths := make([]int, len(headers))
	for i, hd := range headers {
		widths[i] = lipgloss.Width(hd)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	// card chrome (3) + table rules and header (4) + footer (2)
	visible := max(1, h-9)
	start, end := scheduleWindow(len(rows), a.schedScroll, visible)

	table := cli.RenderTable(cli.Table{
		Headers: headers,
		Rows:    rows[start:end],
		Widths:  widths,
	})

	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	footer := muted.Render(fmt.Sprintf("Years %d-%d of %d  ·  [j/k] scroll  [home/end] jump",
		start, end-1, p.Params.Years))

	return components.ContentCard("Growth Schedule", strings.TrimRight(table, "\n")+"\n\n"+footer, cw)
}
