package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/omnibar/internal/domain/entity"
)

const tabLabelMax = 24

// TabStrip renders open tabs as a horizontal bar, the active one highlighted.
type TabStrip struct {
	Tabs     []entity.Tab
	ActiveID entity.TabID
	theme    *Theme
}

// NewTabStrip creates a tab strip for the given tabs.
func NewTabStrip(theme *Theme, tabs []entity.Tab, activeID entity.TabID) TabStrip {
	return TabStrip{Tabs: tabs, ActiveID: activeID, theme: theme}
}

// View renders the strip wrapped at width. Each label carries the tab's load count.
func (m TabStrip) View(width int) string {
	if len(m.Tabs) == 0 {
		return m.theme.Subtle.Render("no tabs")
	}

	labels := make([]string, 0, len(m.Tabs))
	for _, tab := range m.Tabs {
		style := m.theme.InactiveTab
		if tab.ID == m.ActiveID {
			style = m.theme.ActiveTab
		}
		label := lipgloss.JoinHorizontal(lipgloss.Center,
			style.Render(truncate(tab.DisplayTitle(), tabLabelMax)),
			m.theme.Subtle.Render(formatCount(tab.LoadCount)),
		)
		labels = append(labels, label)
	}

	gap := lipgloss.NewStyle().
		Foreground(m.theme.Border).
		Render(" │ ")

	var rows []string
	row := ""
	for _, label := range labels {
		switch {
		case row == "":
			row = label
		case width > 0 && lipgloss.Width(row+gap+label) > width:
			rows = append(rows, row)
			row = label
		default:
			row += gap + label
		}
	}
	rows = append(rows, row)
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// formatCount formats a load count for display.
func formatCount(n int) string {
	if n >= 1000 {
		return "999+"
	}
	return fmt.Sprintf("%d", n)
}
