package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/omnibar/internal/domain/entity"
	"github.com/bnema/omnibar/internal/logging"
)

const historyURLWidth = 56

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Cell.
		Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// HistoryTableColumns returns columns for the history list table.
func HistoryTableColumns() []table.Column {
	return []table.Column{
		{Title: "URL", Width: historyURLWidth},
		{Title: "Visits", Width: 8},
		{Title: "Last Visit", Width: 12},
	}
}

// HistoryRows converts entries to table rows.
func HistoryRows(entries []*entity.HistoryEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			logging.TruncateURL(e.URL, historyURLWidth),
			strconv.FormatInt(e.VisitCount, 10),
			RelativeTime(e.LastVisited),
		})
	}
	return rows
}

// HistoryTable renders entries as a static table.
func (t *Theme) HistoryTable(entries []*entity.HistoryEntry) string {
	if len(entries) == 0 {
		return t.Subtle.Render("  no history yet") + "\n"
	}
	width := 0
	for _, c := range HistoryTableColumns() {
		width += c.Width + 2
	}
	// Header plus border take two lines.
	tbl := NewStyledTable(t, HistoryTableColumns(), HistoryRows(entries), width, len(entries)+2)
	return tbl.View() + "\n"
}
