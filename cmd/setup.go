package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/config"
	"github.com/theirongolddev/sipcalc/internal/sip"
	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	monthly := strconv.FormatFloat(fileCfg.General.MonthlyContribution, 'f', -1, 64)
	years := strconv.Itoa(fileCfg.General.Years)
	currency := fileCfg.General.Currency
	themeName := fileCfg.Appearance.Theme

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to sipcalc!").
				Description("These defaults are used whenever a flag is not given."),
			huh.NewInput().
				Title("Default monthly contribution").
				Description(fmt.Sprintf("Minimum %d, in steps of %d.", sip.MinContribution, sip.ContributionStep)).
				Value(&monthly).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					return sip.CheckContribution(v)
				}),
			huh.NewInput().
				Title("Default duration (years)").
				Value(&years).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					_, err = sip.WholeYears(v)
					return err
				}),
			huh.NewInput().
				Title("Currency symbol").
				Value(&currency).
				CharLimit(4),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	// Validators have already run, so these parse.
	fileCfg.General.MonthlyContribution, _ = strconv.ParseFloat(strings.TrimSpace(monthly), 64)
	y, _ := strconv.ParseFloat(strings.TrimSpace(years), 64)
	fileCfg.General.Years = int(y)
	if c := strings.TrimSpace(currency); c != "" {
		fileCfg.General.Currency = c
	}
	fileCfg.Appearance.Theme = themeName

	if err := config.Save(fileCfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `sipcalc setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
