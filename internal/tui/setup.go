package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/config"
	"github.com/theirongolddev/sipcalc/internal/sip"
	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run form bindings. huh writes through these
// pointers, so App keeps them on the heap.
type setupValues struct {
	monthly  string
	years    string
	currency string
	theme    string
	saveErr  error
}

// paramValues holds the parameter form bindings.
type paramValues struct {
	monthly string
	years   string
	rates   string
}

func parseMonthly(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return v, sip.CheckContribution(v)
}

func parseYears(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return sip.WholeYears(v)
}

func validateMonthly(s string) error {
	if _, err := parseMonthly(s); err != nil {
		return fmt.Errorf("at least %d, in steps of %d", sip.MinContribution, sip.ContributionStep)
	}
	return nil
}

func validateYears(s string) error {
	if _, err := parseYears(s); err != nil {
		return fmt.Errorf("whole years from %d to %d", sip.MinYears, sip.MaxYears)
	}
	return nil
}

func validateRates(s string) error {
	rates, err := sip.ParseRates(s)
	if err != nil {
		return fmt.Errorf("comma separated percentages, e.g. 8,10,12")
	}
	// Project checks positivity and duplicates.
	if _, err := sip.Project(sip.MinContribution, sip.MinYears, rates); err != nil {
		return fmt.Errorf("rates must be distinct and positive")
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRates(rates []float64) string {
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = strconv.FormatFloat(r, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (a *App) openSetupForm() {
	a.setupVals = &setupValues{
		monthly:  formatAmount(a.cfg.General.MonthlyContribution),
		years:    strconv.Itoa(a.cfg.General.Years),
		currency: a.cfg.General.Currency,
		theme:    theme.Active.Name,
	}
	v := a.setupVals

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default monthly contribution").
				Description(fmt.Sprintf("Minimum %d, in steps of %d.", sip.MinContribution, sip.ContributionStep)).
				Value(&v.monthly).
				Validate(validateMonthly),
			huh.NewInput().
				Title("Default duration (years)").
				Value(&v.years).
				Validate(validateYears),
			huh.NewInput().
				Title("Currency symbol").
				Value(&v.currency).
				CharLimit(4),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.theme),
		),
	).WithShowHelp(false)
	a.formKind = formSetup
}

// applySetup stores the first-run answers and adopts them for this session.
func (a *App) applySetup() {
	v := a.setupVals

	if m, err := parseMonthly(v.monthly); err == nil {
		a.cfg.General.MonthlyContribution = m
		a.monthly = m
	}
	if y, err := parseYears(v.years); err == nil {
		a.cfg.General.Years = y
		a.years = y
	}
	if c := strings.TrimSpace(v.currency); c != "" {
		a.cfg.General.Currency = c
		a.currency = c
	}
	a.cfg.Appearance.Theme = v.theme
	theme.SetActive(v.theme)

	v.saveErr = config.Save(a.cfg)
	if v.saveErr != nil {
		a.flash = fmt.Sprintf("Could not save config: %s", v.saveErr)
	} else {
		a.flash = "Saved to " + config.Path()
	}
	a.recompute()
}

func (a *App) openParamsForm() {
	a.paramVals = &paramValues{
		monthly: formatAmount(a.monthly),
		years:   strconv.Itoa(a.years),
		rates:   formatRates(a.rates),
	}
	v := a.paramVals

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly contribution").
				Value(&v.monthly).
				Validate(validateMonthly),
			huh.NewInput().
				Title("Duration (years)").
				Value(&v.years).
				Validate(validateYears),
			huh.NewInput().
				Title("Annual rates (%)").
				Description("Comma separated, e.g. 8,10,12,14,16,18").
				Value(&v.rates).
				Validate(validateRates),
		),
	).WithShowHelp(false)
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, 72)).WithHeight(a.height)
	}
	a.formKind = formParams
}

// applyParams adopts the edited parameters for this session only.
func (a *App) applyParams() {
	v := a.paramVals
	if m, err := parseMonthly(v.monthly); err == nil {
		a.monthly = m
	}
	if y, err := parseYears(v.years); err == nil {
		a.years = y
	}
	if rates, err := sip.ParseRates(v.rates); err == nil {
		a.rates = rates
	}
	a.recompute()
}
