package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/omnibar/internal/application/port"
	portmocks "github.com/bnema/omnibar/internal/application/port/mocks"
	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/domain/entity"
	repomocks "github.com/bnema/omnibar/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSearch = "https://duckduckgo.com/?q=%s"

var tabSwitchSuggestion = autocomplete.Suggestion{
	Kind:   autocomplete.KindTabSwitch,
	Target: "tab-1",
	URL:    "https://example.com/dummy_page.html",
}

func TestDispatch_SwitchTabFocusesExistingTabOnly(t *testing.T) {
	ctx := context.Background()
	tabs := portmocks.NewMockTabSwitcher(t)
	loader := portmocks.NewMockPageLoader(t)
	history := repomocks.NewMockHistoryRepository(t)

	tabs.EXPECT().SwitchToTab(mock.Anything, entity.TabID("tab-1")).Return(nil).Once()

	uc := NewDispatchCommitUseCase(tabs, loader, history, testSearch)
	err := uc.Dispatch(ctx, port.CommitRequest{Action: autocomplete.CommitSwitchTab, Suggestion: tabSwitchSuggestion})

	require.NoError(t, err)
	loader.AssertNotCalled(t, "LoadInActiveTab", mock.Anything, mock.Anything)
	history.AssertNotCalled(t, "RecordVisit", mock.Anything, mock.Anything)
}

func TestDispatch_OverrideLoadsInActiveTabWithoutSwitching(t *testing.T) {
	ctx := context.Background()
	tabs := portmocks.NewMockTabSwitcher(t)
	loader := portmocks.NewMockPageLoader(t)
	history := repomocks.NewMockHistoryRepository(t)

	loader.EXPECT().LoadInActiveTab(mock.Anything, "https://example.com/dummy_page.html").Return(nil).Once()
	history.EXPECT().RecordVisit(mock.Anything, "https://example.com/dummy_page.html").Return(nil).Once()

	uc := NewDispatchCommitUseCase(tabs, loader, history, testSearch)
	err := uc.Dispatch(ctx, port.CommitRequest{Action: autocomplete.CommitOverrideLoad, Suggestion: tabSwitchSuggestion})

	require.NoError(t, err)
	tabs.AssertNotCalled(t, "SwitchToTab", mock.Anything, mock.Anything)
}

func TestDispatch_SearchBuildsURLFromTemplate(t *testing.T) {
	ctx := context.Background()
	loader := portmocks.NewMockPageLoader(t)

	loader.EXPECT().LoadInActiveTab(mock.Anything, "https://duckduckgo.com/?q=dummy+page").Return(nil).Once()

	uc := NewDispatchCommitUseCase(nil, loader, nil, testSearch)
	err := uc.Dispatch(ctx, port.CommitRequest{
		Action:     autocomplete.CommitSearch,
		Suggestion: autocomplete.Suggestion{Kind: autocomplete.KindSearch, URL: "dummy page"},
	})

	require.NoError(t, err)
}

func TestDispatch_NoneIsANoOp(t *testing.T) {
	uc := NewDispatchCommitUseCase(nil, nil, nil, testSearch)
	assert.NoError(t, uc.Dispatch(context.Background(), port.CommitRequest{Action: autocomplete.CommitNone}))
}

func TestDispatch_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing target", func(t *testing.T) {
		uc := NewDispatchCommitUseCase(nil, nil, nil, testSearch)
		err := uc.Dispatch(ctx, port.CommitRequest{
			Action:     autocomplete.CommitSwitchTab,
			Suggestion: autocomplete.Suggestion{Kind: autocomplete.KindTabSwitch},
		})
		assert.ErrorIs(t, err, ErrMissingTarget)
	})

	t.Run("empty url", func(t *testing.T) {
		uc := NewDispatchCommitUseCase(nil, nil, nil, testSearch)
		err := uc.Dispatch(ctx, port.CommitRequest{
			Action:     autocomplete.CommitLoadURL,
			Suggestion: autocomplete.Suggestion{Kind: autocomplete.KindURL},
		})
		assert.ErrorIs(t, err, ErrEmptyURL)
	})

	t.Run("bad search template", func(t *testing.T) {
		uc := NewDispatchCommitUseCase(nil, nil, nil, "https://example.com/search")
		err := uc.Dispatch(ctx, port.CommitRequest{
			Action:     autocomplete.CommitSearch,
			Suggestion: autocomplete.Suggestion{Kind: autocomplete.KindSearch, URL: "terms"},
		})
		assert.ErrorIs(t, err, ErrMissingSearchTemplate)
	})

	t.Run("other kind is a no-op", func(t *testing.T) {
		tabs := portmocks.NewMockTabSwitcher(t)
		loader := portmocks.NewMockPageLoader(t)
		uc := NewDispatchCommitUseCase(tabs, loader, nil, testSearch)
		err := uc.Dispatch(ctx, port.CommitRequest{
			Action:     autocomplete.CommitOther,
			Suggestion: autocomplete.Suggestion{Kind: autocomplete.KindOther, URL: "https://example.com/"},
		})
		assert.NoError(t, err)
	})

	t.Run("unsupported", func(t *testing.T) {
		uc := NewDispatchCommitUseCase(nil, nil, nil, testSearch)
		err := uc.Dispatch(ctx, port.CommitRequest{Action: autocomplete.CommitAction(99)})
		assert.ErrorIs(t, err, ErrUnsupportedAction)
	})

	t.Run("switch failure is wrapped", func(t *testing.T) {
		tabs := portmocks.NewMockTabSwitcher(t)
		boom := errors.New("tab is gone")
		tabs.EXPECT().SwitchToTab(mock.Anything, entity.TabID("tab-1")).Return(boom).Once()

		uc := NewDispatchCommitUseCase(tabs, nil, nil, testSearch)
		err := uc.Dispatch(ctx, port.CommitRequest{Action: autocomplete.CommitSwitchTab, Suggestion: tabSwitchSuggestion})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("load failure is wrapped and not recorded", func(t *testing.T) {
		loader := portmocks.NewMockPageLoader(t)
		history := repomocks.NewMockHistoryRepository(t)
		boom := errors.New("network down")
		loader.EXPECT().LoadInActiveTab(mock.Anything, mock.Anything).Return(boom).Once()

		uc := NewDispatchCommitUseCase(nil, loader, history, testSearch)
		err := uc.Dispatch(ctx, port.CommitRequest{Action: autocomplete.CommitOverrideLoad, Suggestion: tabSwitchSuggestion})
		assert.ErrorIs(t, err, boom)
		history.AssertNotCalled(t, "RecordVisit", mock.Anything, mock.Anything)
	})
}

func TestDispatch_HistoryFailureDoesNotFailLoad(t *testing.T) {
	ctx := context.Background()
	loader := portmocks.NewMockPageLoader(t)
	history := repomocks.NewMockHistoryRepository(t)

	loader.EXPECT().LoadInActiveTab(mock.Anything, "https://example.com").Return(nil).Once()
	history.EXPECT().RecordVisit(mock.Anything, "https://example.com").Return(errors.New("disk full")).Once()

	uc := NewDispatchCommitUseCase(nil, loader, history, testSearch)
	err := uc.Dispatch(ctx, port.CommitRequest{
		Action:     autocomplete.CommitLoadURL,
		Suggestion: autocomplete.Suggestion{Kind: autocomplete.KindURL, URL: "https://example.com"},
	})

	assert.NoError(t, err)
}

func TestBuildSearchURL(t *testing.T) {
	got, err := BuildSearchURL(testSearch, "  go lang  ")
	require.NoError(t, err)
	assert.Equal(t, "https://duckduckgo.com/?q=go+lang", got)

	_, err = BuildSearchURL(testSearch, "   ")
	assert.ErrorIs(t, err, ErrEmptyURL)
}
