package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/omnibar/internal/application/usecase"
	"github.com/bnema/omnibar/internal/cli/styles"
)

// ClearHistoryModel asks for confirmation, then clears the history.
type ClearHistoryModel struct {
	confirm  styles.ConfirmModel
	cleared  bool
	clearing bool
	canceled bool
	err      error

	ctx       context.Context
	historyUC *usecase.ManageHistoryUseCase
	theme     *styles.Theme
}

// NewClearHistoryModel creates the confirmation model.
func NewClearHistoryModel(ctx context.Context, theme *styles.Theme, historyUC *usecase.ManageHistoryUseCase) ClearHistoryModel {
	return ClearHistoryModel{
		confirm:   styles.NewConfirm(theme, "Clear all omnibox history?").WithDetail("Recorded visits cannot be restored."),
		ctx:       ctx,
		historyUC: historyUC,
		theme:     theme,
	}
}

// clearCompleteMsg is sent when clearing is done.
type clearCompleteMsg struct {
	err error
}

// Init implements tea.Model.
func (m ClearHistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ClearHistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearCompleteMsg:
		m.clearing = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.cleared = true
		}
		return m, tea.Quit

	case tea.KeyMsg:
		if m.clearing {
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			m.canceled = true
			return m, tea.Quit
		}
	}

	confirm, cmd := m.confirm.Update(msg)
	m.confirm = confirm

	if m.confirm.Done() {
		if !m.confirm.Result() {
			m.canceled = true
			return m, tea.Quit
		}
		m.clearing = true
		return m, m.performClear()
	}
	return m, cmd
}

func (m ClearHistoryModel) performClear() tea.Cmd {
	return func() tea.Msg {
		return clearCompleteMsg{err: m.historyUC.Clear(m.ctx)}
	}
}

// View implements tea.Model.
func (m ClearHistoryModel) View() string {
	t := m.theme

	switch {
	case m.clearing:
		return t.Box.Render(t.Subtle.Render("Clearing history..."))
	case m.err != nil:
		return t.Box.Render(t.ErrorStyle.Render("Error: " + m.err.Error()))
	case m.cleared:
		return t.Box.Render(lipgloss.JoinHorizontal(lipgloss.Left,
			t.SuccessStyle.Render(styles.IconCheck+" "),
			t.SuccessStyle.Render("History cleared"),
		)) + "\n"
	case m.canceled:
		return ""
	}
	return m.confirm.View()
}

// Cleared reports whether the history was cleared.
func (m ClearHistoryModel) Cleared() bool {
	return m.cleared
}

// Err returns the clear error, if any.
func (m ClearHistoryModel) Err() error {
	return m.err
}

// Ensure interface compliance.
var _ tea.Model = (*ClearHistoryModel)(nil)
