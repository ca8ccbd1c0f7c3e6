package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/ui/component"
)

// KindIcon returns the icon drawn in front of a suggestion row.
func KindIcon(k autocomplete.ActionKind) string {
	switch k {
	case autocomplete.KindTabSwitch:
		return IconTab
	case autocomplete.KindSearch:
		return IconSearch
	default:
		return IconGlobe
	}
}

// SuggestionRow renders one result row. Only the selected row carries the
// affordance snapshot; other rows show their plain URL.
func (t *Theme) SuggestionRow(s autocomplete.Suggestion, selected bool, v component.AffordanceVisibility, buttonStyle bool, width int) string {
	title := s.Title
	if title == "" {
		title = s.DisplayURL()
	}

	parts := []string{KindIcon(s.Kind), title}
	if selected {
		if badge := t.AffordanceBadge(v, buttonStyle); badge != "" {
			parts = append(parts, badge)
		}
		if s.Title != "" && (v.URLLabel || !v.SwitchTabVisible()) {
			parts = append(parts, t.ListItemDesc.Render(s.DisplayURL()))
		}
	} else if s.Kind == autocomplete.KindTabSwitch {
		parts = append(parts, t.ListItemDesc.Render(SwitchTabLabel))
	}

	line := strings.Join(parts, " ")
	style := t.ListItem
	if selected {
		style = t.ListItemSelected
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(line)
}

// SuggestionList renders every row of results.
func (t *Theme) SuggestionList(results *autocomplete.ResultList, v component.AffordanceVisibility, buttonStyle bool, width int) string {
	if results == nil || results.Len() == 0 {
		return t.Subtle.Render("  no suggestions")
	}
	rows := make([]string, 0, results.Len())
	for i := 0; i < results.Len(); i++ {
		rows = append(rows, t.SuggestionRow(*results.At(i), i == results.SelectedIndex(), v, buttonStyle, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
