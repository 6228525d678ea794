// Package tui provides the interactive Bubble Tea dashboard for sipcalc.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/cli"
	"github.com/theirongolddev/sipcalc/internal/config"
	"github.com/theirongolddev/sipcalc/internal/sip"
	"github.com/theirongolddev/sipcalc/internal/tui/components"
	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabGrowth
	tabSchedule
	tabSettings
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

// Options seeds the dashboard with resolved parameters.
type Options struct {
	Config   config.Config // file config without env overrides; settings save it back
	Monthly  float64
	Years    int
	Rates    []float64
	Currency string
	FirstRun bool // show the setup form before the dashboard
}

// formKind says what an open huh form edits.
type formKind int

const (
	formNone formKind = iota
	formSetup
	formParams
)

// App is the root Bubble Tea model.
type App struct {
	cfg config.Config

	// Projection inputs and the current result.
	monthly  float64
	years    int
	rates    []float64
	currency string
	proj     sip.Projection
	projErr  error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	// Per-tab state
	schedScroll int
	focusRate   int
	settings    settingsState

	// huh form overlay (first-run setup or parameter editing)
	form      *huh.Form
	formKind  formKind
	setupVals *setupValues
	paramVals *paramValues
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	a := App{
		cfg:      opts.Config,
		monthly:  opts.Monthly,
		years:    opts.Years,
		rates:    append([]float64(nil), opts.Rates...),
		currency: opts.Currency,
	}
	if len(a.rates) == 0 {
		a.rates = append([]float64(nil), sip.DefaultRates...)
	}
	if a.currency == "" {
		a.currency = cli.DefaultCurrency
	}
	if opts.FirstRun {
		a.openSetupForm()
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// recompute rebuilds the projection from the current parameters.
func (a *App) recompute() {
	a.proj, a.projErr = sip.Project(a.monthly, a.years, a.rates)
	if a.projErr == nil {
		a.focusRate = min(a.focusRate, len(a.rates)-1)
		a.schedScroll = min(a.schedScroll, a.years)
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 72)).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			if msg.String() == "esc" {
				a.form, a.formKind = nil, formNone
				return a, nil
			}
			return a.updateForm(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		return a.updateKey(msg.String())
	}

	// Forward unhandled messages to the open form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabSchedule {
			a.schedScroll = max(0, a.schedScroll-1)
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabSchedule {
			a.schedScroll = min(a.years, a.schedScroll+1)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAtX(msg.X, a.activeTab); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateKey(key string) (tea.Model, tea.Cmd) {
	a.flash = ""

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Per-tab bindings take precedence over the globals below.
	switch a.activeTab {
	case tabSchedule:
		switch key {
		case "j", "down":
			a.schedScroll = min(a.years, a.schedScroll+1)
			return a, nil
		case "k", "up":
			a.schedScroll = max(0, a.schedScroll-1)
			return a, nil
		case "home":
			a.schedScroll = 0
			return a, nil
		case "end":
			a.schedScroll = a.years
			return a, nil
		}
	case tabGrowth:
		if key == "r" && len(a.rates) > 0 {
			a.focusRate = (a.focusRate + 1) % len(a.rates)
			return a, nil
		}
	case tabSettings:
		switch key {
		case "j", "down":
			a.settings.cursor = min(settingsFieldCount-1, a.settings.cursor+1)
			return a, nil
		case "k", "up":
			a.settings.cursor = max(0, a.settings.cursor-1)
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "+", "=":
		a.monthly = sip.StepContribution(a.monthly, 1)
		a.recompute()
	case "-", "_":
		next := sip.StepContribution(a.monthly, -1)
		if next == a.monthly {
			a.flash = fmt.Sprintf("Minimum contribution is %s", cli.FormatCurrency(sip.MinContribution, a.currency))
		}
		a.monthly = next
		a.recompute()
	case "]":
		a.changeYears(1)
	case "[":
		a.changeYears(-1)
	case "e":
		a.openParamsForm()
		return a, a.form.Init()
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(key) == 1 {
			if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a *App) changeYears(delta int) {
	next := sip.ClampYears(a.years + delta)
	if next == a.years {
		a.flash = fmt.Sprintf("Duration must be %d-%d years", sip.MinYears, sip.MaxYears)
		return
	}
	a.years = next
	a.recompute()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		switch a.formKind {
		case formSetup:
			a.applySetup()
		case formParams:
			a.applyParams()
		}
		a.form, a.formKind = nil, formNone
		return a, nil
	case huh.StateAborted:
		a.form, a.formKind = nil, formNone
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(5, a.height)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  sipcalc needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active

	title := "Projection parameters"
	if a.formKind == formSetup {
		title = "Welcome to sipcalc"
	}
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := titleStyle.Render("◈ "+title) + "\n\n" +
		a.form.View() + "\n" +
		hintStyle.Render("enter next · shift+tab back · esc cancel")

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(body)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Parameters", [][2]string{
			{"+ -", fmt.Sprintf("Contribution ± %s", cli.FormatCurrency(sip.ContributionStep, a.currency))},
			{"] [", "Duration ± 1 year"},
			{"e", "Edit all parameters"},
		}},
		{"Navigation", [][2]string{
			{"o g s x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Scroll schedule / settings"},
			{"r", "Focus next rate (Growth)"},
		}},
		{"General", [][2]string{
			{"Enter", "Edit setting"},
			{"Esc", "Cancel"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, kb := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", kb[0])),
				descStyle.Render(kb[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// paramSummary is the compact "₹5,000/mo · 15 years · 8% … 18%" line.
func (a App) paramSummary() string {
	labels := make([]string, len(a.rates))
	for i, r := range a.rates {
		labels[i] = sip.RateLabel(r)
	}
	return fmt.Sprintf("%s/mo · %s · %s",
		cli.FormatCurrency(a.monthly, a.currency), cli.FormatYears(a.years), strings.Join(labels, " "))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.paramSummary(), a.flash)

	contentH := max(minContentHeight, a.height-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch {
	case a.projErr != nil:
		content = components.ContentCard("Invalid parameters",
			lipgloss.NewStyle().Foreground(t.Red).Render(a.projErr.Error())+"\n\n"+
				lipgloss.NewStyle().Foreground(t.TextMuted).Render("Press e to edit the parameters."), cw)
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw)
	case a.activeTab == tabGrowth:
		content = a.renderGrowthTab(cw, contentH)
	case a.activeTab == tabSchedule:
		content = a.renderScheduleTab(cw, contentH)
	case a.activeTab == tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
