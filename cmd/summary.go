package cmd

import (
	"fmt"

	"github.com/theirongolddev/sipcalc/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Maturity value at every rate",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	proj, p, err := project(cmd)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SIP  %s/mo for %s",
		cli.FormatCurrency(p.monthly, p.currency), cli.FormatYears(p.years))))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Maturity Value",
		Headers: cli.MaturityHeaders,
		Rows:    cli.MaturityRows(proj, p.currency),
	}))
	fmt.Println()
	fmt.Println(cli.RenderInfo(cli.InvestedLine(proj, p.currency)))
	fmt.Println()
	return nil
}
