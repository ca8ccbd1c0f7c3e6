package usecase

import (
	"context"
	"strings"

	"github.com/bnema/omnibar/internal/application/port"
	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/domain/repository"
	"github.com/bnema/omnibar/internal/domain/url"
	"github.com/bnema/omnibar/internal/logging"
)

const defaultSuggestLimit = 8

// SuggestUseCase builds the omnibox result rows for a query: open tabs first,
// then visited URLs, then what the query itself would do.
type SuggestUseCase struct {
	tabs        port.TabLister
	historyRepo repository.HistoryRepository // optional
	limit       int
}

// NewSuggestUseCase creates a suggestion builder. historyRepo may be nil.
func NewSuggestUseCase(tabs port.TabLister, historyRepo repository.HistoryRepository, limit int) *SuggestUseCase {
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	return &SuggestUseCase{tabs: tabs, historyRepo: historyRepo, limit: limit}
}

// Suggest returns at most limit rows plus the trailing query rows.
// The active tab is never offered as a tab switch.
func (uc *SuggestUseCase) Suggest(ctx context.Context, query string) []autocomplete.Suggestion {
	query = strings.TrimSpace(query)
	needle := strings.ToLower(query)

	var out []autocomplete.Suggestion
	open := make(map[string]bool)

	active, hasActive := uc.tabs.ActiveTab()
	for _, tab := range uc.tabs.Tabs() {
		open[tab.URL] = true
		if hasActive && tab.ID == active.ID {
			continue
		}
		if !tab.Matches(needle) || len(out) >= uc.limit {
			continue
		}
		out = append(out, autocomplete.Suggestion{
			Kind:   autocomplete.KindTabSwitch,
			Target: autocomplete.TargetRef(tab.ID),
			URL:    tab.URL,
			Title:  tab.Title,
		})
	}

	if uc.historyRepo != nil && len(out) < uc.limit {
		entries, err := uc.historyRepo.GetRecent(ctx, uc.limit*2)
		if err != nil {
			// Suggestions degrade to tabs and the query rows.
			logging.FromContext(ctx).Warn().Err(err).Msg("failed to read history for suggestions")
		}
		for _, e := range entries {
			if len(out) >= uc.limit {
				break
			}
			if open[e.URL] || !e.Matches(needle) {
				continue
			}
			out = append(out, autocomplete.Suggestion{Kind: autocomplete.KindURL, URL: e.URL})
		}
	}

	if query == "" {
		return out
	}
	if url.LooksLikeURL(query) {
		out = append(out, autocomplete.Suggestion{Kind: autocomplete.KindURL, URL: url.Normalize(query)})
	}
	return append(out, autocomplete.Suggestion{Kind: autocomplete.KindSearch, URL: query, Title: query})
}
