package components

import (
	"strings"

	"github.com/theirongolddev/sipcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Growth", Key: 'g', KeyPos: 0},
	{Name: "Schedule", Key: 's', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1},
}

const tabGap = "  "

// tabLabel is the plain text of a tab as drawn, shortcut brackets included.
func tabLabel(i, activeIdx int) string {
	tab := Tabs[i]
	switch {
	case i == activeIdx:
		return tab.Name
	case tab.KeyPos >= 0:
		return tab.Name[:tab.KeyPos] + "[" + string(tab.Name[tab.KeyPos]) + "]" + tab.Name[tab.KeyPos+1:]
	default:
		return tab.Name + "[" + string(tab.Key) + "]"
	}
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimKeyStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		switch {
		case i == activeIdx:
			parts[i] = activeStyle.Render(tab.Name)
		case tab.KeyPos >= 0:
			parts[i] = inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
				dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Name[tab.KeyPos])) + dimKeyStyle.Render("]") +
				inactiveStyle.Render(tab.Name[tab.KeyPos+1:])
		default:
			parts[i] = inactiveStyle.Render(tab.Name) +
				dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]")
		}
	}

	bar := " " + strings.Join(parts, tabGap)
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}

// TabAtX returns the tab under column x of the tab bar, or -1.
func TabAtX(x, activeIdx int) int {
	pos := 1 // leading space
	for i := range Tabs {
		w := len(tabLabel(i, activeIdx))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + len(tabGap)
	}
	return -1
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
