package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/config"
	"github.com/theirongolddev/sipcalc/internal/tui/components"
	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldMonthly
	settingsFieldYears
	settingsFieldChartWidth
	settingsFieldChartHeight
	settingsFieldAddr
	settingsFieldCount // sentinel
)

var settingsLabels = [settingsFieldCount]string{
	"Theme",
	"Currency",
	"Default Monthly",
	"Default Years",
	"Chart Width",
	"Chart Height",
	"API Address",
}

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool
	err     error // validation or save failure from the last edit
}

func (a App) settingsValue(field int) string {
	c := a.cfg
	switch field {
	case settingsFieldTheme:
		return c.Appearance.Theme
	case settingsFieldCurrency:
		return c.General.Currency
	case settingsFieldMonthly:
		return formatAmount(c.General.MonthlyContribution)
	case settingsFieldYears:
		return strconv.Itoa(c.General.Years)
	case settingsFieldChartWidth:
		return strconv.Itoa(c.Chart.Width)
	case settingsFieldChartHeight:
		return strconv.Itoa(c.Chart.Height)
	case settingsFieldAddr:
		return c.Server.Addr
	}
	return ""
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	ti.SetValue(a.settingsValue(a.settings.cursor))

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
	case settingsFieldMonthly:
		ti.Placeholder = "5000"
	case settingsFieldYears:
		ti.Placeholder = "15"
	case settingsFieldAddr:
		ti.Placeholder = "127.0.0.1:8787"
	}

	ti.Focus()
	a.settings.input = ti
	a.settings.editing = true
	a.settings.saved = false
	a.settings.err = nil
	return a, textinput.Blink
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.err = a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.err == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited field and writes the config file. The
// running dashboard adopts the change only once the save succeeds.
func (a *App) settingsSave() error {
	val := strings.TrimSpace(a.settings.input.Value())
	cfg := a.cfg
	monthly, years, currency := a.monthly, a.years, a.currency

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !slices.Contains(theme.Names(), val) {
			return fmt.Errorf("unknown theme %q", val)
		}
		cfg.Appearance.Theme = val
	case settingsFieldCurrency:
		if val == "" {
			return fmt.Errorf("currency symbol cannot be empty")
		}
		cfg.General.Currency = val
		currency = val
	case settingsFieldMonthly:
		m, err := parseMonthly(val)
		if err != nil {
			return fmt.Errorf("monthly contribution: %w", err)
		}
		cfg.General.MonthlyContribution = m
		monthly = m
	case settingsFieldYears:
		y, err := parseYears(val)
		if err != nil {
			return fmt.Errorf("years: %w", err)
		}
		cfg.General.Years = y
		years = y
	case settingsFieldChartWidth, settingsFieldChartHeight:
		n, err := strconv.Atoi(val)
		if err != nil || n < 100 {
			return fmt.Errorf("chart size must be a whole number of pixels, at least 100")
		}
		if a.settings.cursor == settingsFieldChartWidth {
			cfg.Chart.Width = n
		} else {
			cfg.Chart.Height = n
		}
	case settingsFieldAddr:
		if val == "" {
			return fmt.Errorf("address cannot be empty")
		}
		cfg.Server.Addr = val
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	a.monthly, a.years, a.currency = monthly, years, currency
	theme.SetActive(cfg.Appearance.Theme)
	a.recompute()
	return nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	innerW := components.CardInnerWidth(cw)

	var form strings.Builder
	for i := 0; i < settingsFieldCount; i++ {
		label := fmt.Sprintf("%-18s ", settingsLabels[i]+":")
		switch {
		case a.settings.editing && i == a.settings.cursor:
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(selectedLabelStyle.Render(label))
			form.WriteString(a.settings.input.View())
		case i == a.settings.cursor:
			row := markerStyle.Render("▸ ") + selectedLabelStyle.Render(label) + selectedStyle.Render(a.settingsValue(i))
			form.WriteString(row)
			if pad := innerW - lipgloss.Width(row); pad > 0 {
				form.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", pad)))
			}
		default:
			form.WriteString("  " + labelStyle.Render(label) + valueStyle.Render(a.settingsValue(i)))
		}
		form.WriteString("\n")
	}

	switch {
	case a.settings.err != nil:
		form.WriteString("\n")
		form.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render("Not saved: " + a.settings.err.Error()))
	case a.settings.saved:
		form.WriteString("\n")
		form.WriteString(lipgloss.NewStyle().Foreground(t.Green).Render("Saved!"))
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit/save  [Esc] cancel"))

	info := labelStyle.Render("Config file: ") + valueStyle.Render(config.Path()) + "\n" +
		labelStyle.Render("Overrides:   ") + valueStyle.Render(strings.Join([]string{
		config.EnvMonthly, config.EnvYears, config.EnvCurrency, config.EnvAddr,
	}, ", "))

	return components.ContentCard("Settings", form.String(), cw) + "\n" +
		components.ContentCard("General", info, cw)
}
