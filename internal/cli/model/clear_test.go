package model

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/omnibar/internal/application/usecase"
	"github.com/bnema/omnibar/internal/cli/styles"
	repomocks "github.com/bnema/omnibar/internal/domain/repository/mocks"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// drive feeds msgs and runs returned commands until the model quits.
func drive(t *testing.T, m ClearHistoryModel, msgs ...tea.Msg) ClearHistoryModel {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		cm, ok := next.(ClearHistoryModel)
		require.True(t, ok)
		m = cm
		if cmd == nil {
			continue
		}
		if done, ok := cmd().(clearCompleteMsg); ok {
			next, _ = m.Update(done)
			m = next.(ClearHistoryModel)
		}
	}
	return m
}

func TestClearHistoryModel_ConfirmClears(t *testing.T) {
	repo := repomocks.NewMockHistoryRepository(t)
	repo.EXPECT().DeleteAll(mock.Anything).Return(nil).Once()

	m := NewClearHistoryModel(context.Background(), styles.NewTheme(), usecase.NewManageHistoryUseCase(repo))
	m = drive(t, m, runeKey('y'), tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.Cleared())
	assert.NoError(t, m.Err())
	assert.Contains(t, m.View(), "History cleared")
}

func TestClearHistoryModel_DefaultIsNo(t *testing.T) {
	repo := repomocks.NewMockHistoryRepository(t)

	m := NewClearHistoryModel(context.Background(), styles.NewTheme(), usecase.NewManageHistoryUseCase(repo))
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Cleared())
	assert.Empty(t, m.View())
}

func TestClearHistoryModel_Error(t *testing.T) {
	repo := repomocks.NewMockHistoryRepository(t)
	repo.EXPECT().DeleteAll(mock.Anything).Return(errors.New("locked")).Once()

	m := NewClearHistoryModel(context.Background(), styles.NewTheme(), usecase.NewManageHistoryUseCase(repo))
	m = drive(t, m, runeKey('y'), tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Cleared())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "locked")
}
