// Package plot renders projections to PNG and SVG images.
package plot

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/cli"
	"github.com/theirongolddev/sipcalc/internal/sip"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Default image size in pixels.
const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

// ErrUnknownFormat is returned for file extensions other than .png and .svg.
var ErrUnknownFormat = errors.New("plot: unknown image format")

// Options controls image rendering. Zero values fall back to defaults.
type Options struct {
	Format   Format
	Width    int
	Height   int
	Currency string
}

// palette is the Flexoki accent set, one color per rate line.
var palette = []drawing.Color{
	drawing.ColorFromHex("4385BE"),
	drawing.ColorFromHex("879A39"),
	drawing.ColorFromHex("D0A215"),
	drawing.ColorFromHex("DA702C"),
	drawing.ColorFromHex("D14D41"),
	drawing.ColorFromHex("8B7EC8"),
	drawing.ColorFromHex("3AA99F"),
	drawing.ColorFromHex("CE5D97"),
}

// FormatFromPath picks an image format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Title returns the chart heading for a projection.
func Title(p sip.Projection) string {
	return fmt.Sprintf("SIP Growth Comparison over %d Years", p.Params.Years)
}

// Render draws one line per rate with year on the x axis and total wealth
// on the y axis.
func Render(w io.Writer, p sip.Projection, opts Options) error {
	if opts.Format == "" {
		opts.Format = PNG
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Currency == "" {
		opts.Currency = cli.DefaultCurrency
	}

	var provider chart.RendererProvider
	switch opts.Format {
	case PNG:
		provider = chart.PNG
	case SVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	ch := build(p, opts)
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("rendering %s chart: %w", opts.Format, err)
	}
	return nil
}

func build(p sip.Projection, opts Options) chart.Chart {
	years := make([]float64, p.Params.Years+1)
	for y := range years {
		years[y] = float64(y)
	}

	var series []chart.Series
	for i, line := range p.Lines() {
		col := palette[i%len(palette)]
		series = append(series, chart.ContinuousSeries{
			Name:    line.Label,
			XValues: years,
			YValues: line.Amounts,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    3,
			},
		})
	}

	step, ceiling := cli.NiceTicks(p.Peak(), 6)
	var yTicks []chart.Tick
	for v := 0.0; v <= ceiling+step/2; v += step {
		yTicks = append(yTicks, chart.Tick{Value: v, Label: cli.FormatAxis(v)})
	}

	xStep := max(1, p.Params.Years/10)
	var xTicks []chart.Tick
	for y := 0; y <= p.Params.Years; y += xStep {
		xTicks = append(xTicks, chart.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}

	ch := chart.Chart{
		Title:      Title(p),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 24, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Years",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(p.Params.Years)},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  fmt.Sprintf("Total Wealth (%s)", opts.Currency),
			Range: &chart.ContinuousRange{Min: 0, Max: ceiling},
			Ticks: yTicks,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}
