package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/sipcalc/internal/cli"
	"github.com/theirongolddev/sipcalc/internal/plot"
	"github.com/theirongolddev/sipcalc/internal/tui/components"
	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagChartOut    string
	flagChartWidth  int
	flagChartHeight int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Growth chart in the terminal, or as a PNG/SVG file",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&flagChartOut, "out", "o", "", "Write an image instead (.png or .svg)")
	chartCmd.Flags().IntVar(&flagChartWidth, "width", 0, "Width: pixels with --out, columns otherwise")
	chartCmd.Flags().IntVar(&flagChartHeight, "height", 0, "Height: pixels with --out, rows otherwise")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	proj, p, err := project(cmd)
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	if flagChartOut == "" {
		w, h := flagChartWidth, flagChartHeight
		if w <= 0 {
			w = 78
		}
		if h <= 0 {
			h = 22
		}
		lines := proj.Lines()
		series := make([]components.Series, len(lines))
		for i, l := range lines {
			series[i] = components.Series{Name: l.Label, Values: l.Amounts, Color: theme.Active.SeriesColor(i)}
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(plot.Title(proj)))
		fmt.Println()
		fmt.Println(components.LineChart(series, w, h))
		fmt.Println()
		fmt.Println(cli.RenderInfo(cli.InvestedLine(proj, p.currency)))
		fmt.Println()
		return nil
	}

	format, err := plot.FormatFromPath(flagChartOut)
	if err != nil {
		return err
	}
	opts := plot.Options{
		Format:   format,
		Width:    cfg.Chart.Width,
		Height:   cfg.Chart.Height,
		Currency: p.currency,
	}
	if flagChartWidth > 0 {
		opts.Width = flagChartWidth
	}
	if flagChartHeight > 0 {
		opts.Height = flagChartHeight
	}

	f, err := os.Create(flagChartOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagChartOut, err)
	}
	if err := plot.Render(f, proj, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", flagChartOut, err)
	}

	status("Wrote %s (%dx%d %s)", flagChartOut, opts.Width, opts.Height, format)
	return nil
}
