package styles_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/omnibar/internal/cli/styles"
)

func press(m styles.ConfirmModel, msgs ...tea.KeyMsg) styles.ConfirmModel {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestConfirm(t *testing.T) {
	theme := styles.NewTheme()
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	right := tea.KeyMsg{Type: tea.KeyRight}
	esc := tea.KeyMsg{Type: tea.KeyEsc}
	yes := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}

	tests := []struct {
		name   string
		keys   []tea.KeyMsg
		done   bool
		result bool
	}{
		{"enter keeps default no", []tea.KeyMsg{enter}, true, false},
		{"y then enter", []tea.KeyMsg{yes, enter}, true, true},
		{"toggle twice is no", []tea.KeyMsg{right, right, enter}, true, false},
		{"escape cancels", []tea.KeyMsg{yes, esc}, true, false},
		{"keys after done ignored", []tea.KeyMsg{enter, yes, enter}, true, false},
		{"selection alone", []tea.KeyMsg{right}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(styles.NewConfirm(theme, "Clear?"), tt.keys...)
			assert.Equal(t, tt.done, m.Done())
			assert.Equal(t, tt.result, m.Result())
		})
	}
}

func TestConfirm_ViewShowsDetail(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(), "Clear all omnibox history?").WithDetail("cannot be restored")

	out := m.View()
	assert.Contains(t, out, "Clear all omnibox history?")
	assert.Contains(t, out, "cannot be restored")
	assert.Contains(t, out, "Yes")
	assert.False(t, m.Selected())
}
