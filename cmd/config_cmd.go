// Package cmd implements the sipcalc CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/cli"
	"github.com/theirongolddev/sipcalc/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	const w = 22
	fmt.Println("  [General]")
	fmt.Println(cli.RenderKeyValue("Monthly contribution", cli.FormatCurrency(cfg.General.MonthlyContribution, cfg.General.Currency), w))
	fmt.Println(cli.RenderKeyValue("Years", fmt.Sprintf("%d", cfg.General.Years), w))
	fmt.Println(cli.RenderKeyValue("Currency", cfg.General.Currency, w))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Println(cli.RenderKeyValue("Theme", cfg.Appearance.Theme, w))
	fmt.Println()

	fmt.Println("  [Chart]")
	fmt.Println(cli.RenderKeyValue("Image size", fmt.Sprintf("%dx%d px", cfg.Chart.Width, cfg.Chart.Height), w))
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Println(cli.RenderKeyValue("Address", cfg.Server.Addr, w))
	origins := "none"
	if len(cfg.Server.AllowedOrigins) > 0 {
		origins = strings.Join(cfg.Server.AllowedOrigins, ", ")
	}
	fmt.Println(cli.RenderKeyValue("Allowed origins", origins, w))
	fmt.Println()

	var overrides []string
	for _, k := range []string{config.EnvMonthly, config.EnvYears, config.EnvCurrency, config.EnvAddr} {
		if v := os.Getenv(k); v != "" {
			overrides = append(overrides, k+"="+v)
		}
	}
	if len(overrides) > 0 {
		fmt.Println("  Environment overrides: " + strings.Join(overrides, " "))
		fmt.Println()
	}

	fmt.Println("  Run `sipcalc setup` to reconfigure.")
	return nil
}
