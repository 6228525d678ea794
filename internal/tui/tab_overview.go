package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/cli"
	"github.com/theirongolddev/sipcalc/internal/tui/components"
	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	p := a.proj
	final := p.FinalYear()
	if len(final) == 0 {
		return ""
	}

	best := final[0]
	for _, pt := range final[1:] {
		if pt.Amount > best.Amount {
			best = pt
		}
	}

	var b strings.Builder

	// Row 1: headline metrics
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Monthly", Value: cli.FormatCurrency(a.monthly, a.currency), Note: cli.FormatYears(a.years)},
		{Label: "Total Invested", Value: cli.FormatCurrency(p.TotalInvested, a.currency)},
		{Label: "Best Case @ " + best.Label, Value: cli.FormatCurrency(best.Amount, a.currency), Color: t.Green},
		{Label: "Best Multiple", Value: cli.FormatMultiple(best.Amount, p.TotalInvested), Note: "of amount invested"},
	}, cw))
	b.WriteString("\n")

	// Row 2: maturity table, plus share bars beside it when there is room
	table := strings.TrimRight(cli.RenderTable(cli.Table{
		Headers: cli.MaturityHeaders,
		Rows:    cli.MaturityRows(p, a.currency),
	}), "\n")
	title := fmt.Sprintf("Maturity after %s", cli.FormatYears(a.years))

	tableW := lipgloss.Width(table) + 4 // border + padding
	if cw-tableW >= 40 {
		b.WriteString(components.CardRow([]string{
			components.ContentCard(title, table, tableW),
			a.shareCard(cw - tableW),
		}))
	} else {
		b.WriteString(components.ContentCard(title, table, cw))
		b.WriteString("\n")
		b.WriteString(a.shareCard(cw))
	}
	b.WriteString("\n")

	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	b.WriteString(" " + muted.Render(cli.InvestedLine(p, a.currency)))

	return b.String()
}

// shareCard shows, per rate, how much of the maturity value is principal.
func (a App) shareCard(outerW int) string {
	final := a.proj.FinalYear()
	inner := components.CardInnerWidth(outerW)

	labelW := 0
	for _, pt := range final {
		labelW = max(labelW, len(pt.Label))
	}
	barW := max(10, inner-labelW-14)

	var body strings.Builder
	for _, pt := range final {
		body.WriteString(components.ShareBar(pt.Label, a.proj.TotalInvested, pt.Amount, labelW, barW))
		body.WriteString("\n")
	}
	body.WriteString("\n")
	body.WriteString(components.ShareLegend())

	return components.ContentCard("Invested vs Gain", body.String(), outerW)
}
