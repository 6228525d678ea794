package tui

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/sipcalc/internal/cli"
	"github.com/theirongolddev/sipcalc/internal/plot"
	"github.com/theirongolddev/sipcalc/internal/tui/components"
	"github.com/theirongolddev/sipcalc/internal/tui/theme"
)

func (a App) renderGrowthTab(cw, h int) string {
	t := theme.Active
	lines := a.proj.Lines()
	if len(lines) == 0 {
		return ""
	}

	series := make([]components.Series, len(lines))
	for i, l := range lines {
		series[i] = components.Series{Name: l.Label, Values: l.Amounts, Color: t.SeriesColor(i)}
	}

	inner := components.CardInnerWidth(cw)

	// Split height between the comparison chart and the focused-rate bars.
	// Each card costs 3 lines of chrome (border + title).
	lineH := max(10, (h*3)/5-3)
	barH := max(4, h-lineH-8)

	growth := components.ContentCard(plot.Title(a.proj),
		components.LineChart(series, inner, lineH), cw)

	focus := lines[a.focusRate]
	labels := make([]string, len(focus.Amounts))
	for y := range labels {
		labels[y] = strconv.Itoa(y)
	}
	final := focus.Amounts[len(focus.Amounts)-1]
	title := fmt.Sprintf("Year by year @ %s  ·  %s  ·  [r] next rate",
		focus.Label, cli.FormatCurrency(final, a.currency))
	bars := components.ContentCard(title,
		components.BarChart(focus.Amounts, labels, t.SeriesColor(a.focusRate), inner, barH), cw)

	return growth + "\n" + bars
}
