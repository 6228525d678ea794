package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(80, 3)
	if len(widths) != 3 {
		t.Fatalf("len = %d, want 3", len(widths))
	}
	if widths[0] != 27 || widths[1] != 27 || widths[2] != 26 {
		t.Errorf("widths = %v, want [27 27 26]", widths)
	}
	if LayoutRow(80, 0) != nil {
		t.Error("LayoutRow(80, 0) should be nil")
	}
}

func TestCardRowEqualHeights(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "Content", 22)
	tall := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	if lipgloss.Height(short) >= lipgloss.Height(tall) {
		t.Fatal("test setup: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tall, short})
	lines := strings.Split(joined, "\n")
	if len(lines) != lipgloss.Height(tall) {
		t.Errorf("joined height = %d, want %d", len(lines), lipgloss.Height(tall))
	}

	want := lipgloss.Width(tall) + lipgloss.Width(short)
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Monthly", Value: "₹5,000"},
		{Label: "Invested", Value: "₹900,000", Note: "over 15 years"},
		{Label: "Best case", Value: "₹4,596,044", Color: theme.Active.Green},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
	if !strings.Contains(row, "₹4,596,044") {
		t.Error("row missing metric value")
	}
}
