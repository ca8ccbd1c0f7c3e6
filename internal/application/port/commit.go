// Package port defines application-layer interfaces for external capabilities.
// Ports keep the omnibox controller and its use cases independent of the
// browser that ultimately switches tabs and loads pages.
package port

import (
	"context"

	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/domain/entity"
)

// CommitRequest is what the omnibox hands over when a suggestion is committed.
type CommitRequest struct {
	Action     autocomplete.CommitAction
	Suggestion autocomplete.Suggestion
}

// CommitDispatcher executes a resolved commit action.
// Implementations own navigation failures and report them as errors.
type CommitDispatcher interface {
	Dispatch(ctx context.Context, req CommitRequest) error
}

// TabSwitcher focuses an already-open tab without navigating it.
type TabSwitcher interface {
	SwitchToTab(ctx context.Context, id entity.TabID) error
}

// PageLoader starts a fresh load in the currently active tab.
// It must not change which tab is active.
type PageLoader interface {
	LoadInActiveTab(ctx context.Context, url string) error
}

// TabLister exposes the open tabs the omnibox offers "switch to tab" rows for.
type TabLister interface {
	Tabs() []entity.Tab
	ActiveTab() (entity.Tab, bool)
}
