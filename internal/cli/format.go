// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/theirongolddev/sipcalc/internal/sip"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the symbol prefixed to amounts when none is configured.
const DefaultCurrency = "₹"

// FormatCurrency rounds to whole units, ties to even, and adds thousands
// separators. e.g., 2522879.99 -> "₹2,522,880", 2.5 -> "₹2"
func FormatCurrency(amount float64, symbol string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return symbol + "-"
	}
	whole := decimal.NewFromFloat(amount).RoundBank(0).IntPart()
	if whole < 0 {
		return "-" + symbol + humanize.Comma(-whole)
	}
	return symbol + humanize.Comma(whole)
}

// FormatAxis formats a chart tick: integer part only, comma separated.
// e.g., 1500000.7 -> "1,500,000"
func FormatAxis(v float64) string {
	return humanize.Comma(int64(v))
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatCompact shortens large amounts for narrow spaces.
// e.g., 2522880 -> "2.5M", 12533 -> "12.5K"
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// FormatMultiple formats how many times the invested amount a value is.
func FormatMultiple(value, invested float64) string {
	if invested <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", value/invested)
}

// FormatYears renders a duration like "1 year" or "15 years".
func FormatYears(n int) string {
	if n == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", n)
}

// MaturityRows builds the final-year table: rate, maturity value, gain, multiple.
func MaturityRows(p sip.Projection, symbol string) [][]string {
	final := p.FinalYear()
	rows := make([][]string, 0, len(final))
	for _, pt := range final {
		rows = append(rows, []string{
			pt.Label,
			FormatCurrency(pt.Amount, symbol),
			FormatCurrency(p.Gain(pt), symbol),
			FormatMultiple(pt.Amount, p.TotalInvested),
		})
	}
	return rows
}

// MaturityHeaders are the column titles matching MaturityRows.
var MaturityHeaders = []string{"Rate", "Maturity Value", "Gain", "Multiple"}

// ScheduleHeaders returns "Year", "Invested", then one column per rate label.
func ScheduleHeaders(p sip.Projection) []string {
	headers := []string{"Year", "Invested"}
	for _, r := range p.Params.Rates {
		headers = append(headers, sip.RateLabel(r))
	}
	return headers
}

// ScheduleRows builds one row per year 0..Years with the value at every rate.
func ScheduleRows(p sip.Projection, symbol string) [][]string {
	rows := make([][]string, 0, p.Params.Years+1)
	for y := 0; y <= p.Params.Years; y++ {
		row := []string{
			fmt.Sprintf("%d", y),
			FormatCurrency(p.InvestedAt(y), symbol),
		}
		for _, pt := range p.YearPoints(y) {
			row = append(row, FormatCurrency(pt.Amount, symbol))
		}
		rows = append(rows, row)
	}
	return rows
}

// InvestedLine is the closing summary shown under every table.
func InvestedLine(p sip.Projection, symbol string) string {
	return fmt.Sprintf("Total amount invested over %s: %s",
		FormatYears(p.Params.Years), FormatCurrency(p.TotalInvested, symbol))
}

// NiceTicks picks a round tick interval for an axis reaching maxVal and the
// ceiling it rounds up to, using at most maxIntervals intervals.
func NiceTicks(maxVal float64, maxIntervals int) (step, ceiling float64) {
	if maxVal <= 0 {
		return 1, 1
	}
	if maxIntervals < 1 {
		maxIntervals = 1
	}

	step = tickStep(maxVal)
	for int(math.Ceil(maxVal/step)) > maxIntervals {
		step *= 2
	}
	return step, math.Ceil(maxVal/step) * step
}

// tickStep computes a nice tick interval targeting ~5 ticks.
func tickStep(maxVal float64) float64 {
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}
