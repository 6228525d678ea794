package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/cli"
	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Series is one named line in a LineChart. Values[i] is plotted at x = i.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	return style.Render(cli.RenderSparkline(values))
}

// LineChart plots several series over a shared x axis with thousands
// separated y tick labels. width and height are the total cell budget; the
// legend goes on the last line.
func LineChart(series []Series, width, height int) string {
	n := 0
	peak := 0.0
	for _, s := range series {
		n = max(n, len(s.Values))
		for _, v := range s.Values {
			peak = max(peak, v)
		}
	}
	if n == 0 {
		return ""
	}
	t := theme.Active

	// rows reserved: x axis, x labels, legend
	plotH := max(3, height-3)
	step, ceiling := cli.NiceTicks(peak, max(1, plotH/3))
	labelW := max(4, len(cli.FormatAxis(ceiling))+1)
	plotW := max(8, width-labelW-1)

	type cell struct {
		r     rune
		color lipgloss.Color
	}
	grid := make([][]cell, plotH)
	for i := range grid {
		grid[i] = make([]cell, plotW)
	}

	rowOf := func(v float64) int {
		r := plotH - 1 - int(math.Round(v/ceiling*float64(plotH-1)))
		return max(0, min(plotH-1, r))
	}
	xOf := func(i int) int {
		if n == 1 {
			return 0
		}
		return int(math.Round(float64(i) * float64(plotW-1) / float64(n-1)))
	}

	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		// Interpolate between data points, then mark the points themselves.
		for col := 0; col < plotW; col++ {
			pos := 0.0
			if n > 1 {
				pos = float64(col) * float64(n-1) / float64(plotW-1)
			}
			lo := int(math.Floor(pos))
			hi := min(lo+1, len(s.Values)-1)
			if lo >= len(s.Values) {
				break
			}
			frac := pos - float64(lo)
			v := s.Values[lo]*(1-frac) + s.Values[hi]*frac
			grid[rowOf(v)][col] = cell{'·', s.Color}
		}
		for i, v := range s.Values {
			grid[rowOf(v)][xOf(i)] = cell{'●', s.Color}
		}
	}

	tickRows := make(map[int]string)
	for v := step; v <= ceiling+step/2; v += step {
		tickRows[rowOf(v)] = cli.FormatAxis(v)
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	var b strings.Builder
	for r := 0; r < plotH; r++ {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, tickRows[r])))
		b.WriteString(axisStyle.Render("┤"))
		for _, c := range grid[r] {
			if c.r == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(string(c.r)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", plotW)))
	b.WriteString("\n")

	xLabels := []byte(strings.Repeat(" ", plotW))
	for _, i := range xTickIndexes(n) {
		lbl := strconv.Itoa(i)
		pos := min(xOf(i), plotW-len(lbl))
		copy(xLabels[pos:], lbl)
	}
	b.WriteString(strings.Repeat(" ", labelW+1))
	b.WriteString(axisStyle.Render(strings.TrimRight(string(xLabels), " ")))
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", labelW+1))
	b.WriteString(Legend(series))

	return b.String()
}

// xTickIndexes picks up to six evenly spaced x labels, always including the
// first and last index.
func xTickIndexes(n int) []int {
	if n <= 1 {
		return []int{0}
	}
	stride := max(1, int(math.Ceil(float64(n-1)/5)))
	var out []int
	for i := 0; i < n-1; i += stride {
		out = append(out, i)
	}
	if last := out[len(out)-1]; n-1-last < stride/2 && last != 0 {
		out = out[:len(out)-1]
	}
	return append(out, n-1)
}

// Legend renders one colored swatch per series.
func Legend(series []Series) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	parts := make([]string, len(series))
	for i, s := range series {
		parts[i] = lipgloss.NewStyle().Foreground(s.Color).Render("━━") + " " + nameStyle.Render(s.Name)
	}
	return strings.Join(parts, "   ")
}

// BarChart renders one vertical bar per value with a y axis scaled by
// cli.NiceTicks and optional x labels under the bars.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	step, ceiling := cli.NiceTicks(peak, max(2, height/2))
	intervals := max(1, int(math.Round(ceiling/step)))
	rowsPerTick := max(2, height/intervals)
	chartH := rowsPerTick * intervals

	labelW := max(4, len(cli.FormatCompact(ceiling))+1)
	tickLabels := make(map[int]string)
	for i := 1; i <= intervals; i++ {
		tickLabels[i*rowsPerTick] = cli.FormatCompact(step * float64(i))
	}

	n := len(values)
	chartW := max(5, width-labelW-1)
	barW := max(1, min(6, (chartW-(n-1))/n))
	gap := 1
	if n == 1 {
		gap = 0
	}
	axisLen := n*barW + (n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	barStyle := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))
		for i, v := range values {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := max(1, min(8, int((v-bottom)/(top-bottom)*8)))
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		buf := []byte(strings.Repeat(" ", axisLen))
		lastEnd := -1
		for i, lbl := range labels {
			pos := i * (barW + gap)
			if pos <= lastEnd || pos+len(lbl) > axisLen {
				continue
			}
			copy(buf[pos:], lbl)
			lastEnd = pos + len(lbl)
		}
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", labelW+1))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}
