package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/omnibar/internal/application/port"
	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/domain/entity"
	"github.com/bnema/omnibar/internal/domain/repository"
	"github.com/bnema/omnibar/internal/logging"
)

// logURLMaxLen is the max length for URLs in log messages.
const logURLMaxLen = 60

var (
	// ErrMissingTarget is returned when a tab switch has no tab to switch to.
	ErrMissingTarget = errors.New("tab switch suggestion has no target tab")
	// ErrEmptyURL is returned when a load is requested without a URL.
	ErrEmptyURL = errors.New("suggestion has no URL to load")
	// ErrMissingSearchTemplate is returned when no usable search engine template is configured.
	ErrMissingSearchTemplate = errors.New("default search engine must contain a %s placeholder")
	// ErrUnsupportedAction is returned for action values outside the known set.
	ErrUnsupportedAction = errors.New("unsupported commit action")
)

// DispatchCommitUseCase turns a resolved commit action into a tab switch or a page load.
type DispatchCommitUseCase struct {
	tabs          port.TabSwitcher
	loader        port.PageLoader
	historyRepo   repository.HistoryRepository // optional
	defaultSearch string
}

var _ port.CommitDispatcher = (*DispatchCommitUseCase)(nil)

// NewDispatchCommitUseCase creates a commit dispatcher.
// historyRepo may be nil, in which case loads are not recorded.
func NewDispatchCommitUseCase(
	tabs port.TabSwitcher,
	loader port.PageLoader,
	historyRepo repository.HistoryRepository,
	defaultSearch string,
) *DispatchCommitUseCase {
	return &DispatchCommitUseCase{
		tabs:          tabs,
		loader:        loader,
		historyRepo:   historyRepo,
		defaultSearch: defaultSearch,
	}
}

// Dispatch executes req.Action for req.Suggestion.
//
// A plain tab switch only focuses the existing tab. An override load starts a
// fresh navigation in the active tab and never touches the tab the suggestion
// points at, so no tab-select happens.
func (uc *DispatchCommitUseCase) Dispatch(ctx context.Context, req port.CommitRequest) error {
	log := logging.FromContext(ctx)
	s := req.Suggestion

	switch req.Action {
	case autocomplete.CommitNone:
		return nil

	case autocomplete.CommitSwitchTab:
		if s.Target == "" {
			return ErrMissingTarget
		}
		log.Info().
			Str("tab_id", string(s.Target)).
			Msg("switching to open tab")
		if err := uc.tabs.SwitchToTab(ctx, entity.TabID(s.Target)); err != nil {
			return fmt.Errorf("failed to switch to tab %s: %w", s.Target, err)
		}
		return nil

	case autocomplete.CommitOverrideLoad, autocomplete.CommitLoadURL:
		if s.URL == "" {
			return ErrEmptyURL
		}
		return uc.load(ctx, req.Action, s.URL)

	case autocomplete.CommitSearch:
		target, err := BuildSearchURL(uc.defaultSearch, s.URL)
		if err != nil {
			return err
		}
		return uc.load(ctx, req.Action, target)

	case autocomplete.CommitOther:
		// Rows of other kinds are handled by their own providers.
		log.Debug().
			Str("kind", s.Kind.String()).
			Msg("commit left to the suggestion provider")
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedAction, req.Action)
	}
}

func (uc *DispatchCommitUseCase) load(ctx context.Context, action autocomplete.CommitAction, target string) error {
	log := logging.FromContext(ctx)
	log.Info().
		Str("action", action.String()).
		Str("url", logging.TruncateURL(target, logURLMaxLen)).
		Msg("loading in active tab")

	if err := uc.loader.LoadInActiveTab(ctx, target); err != nil {
		return fmt.Errorf("failed to load URL: %w", err)
	}

	if uc.historyRepo == nil {
		return nil
	}
	// History is best effort; a failed write must not turn a successful load into an error.
	if err := uc.historyRepo.RecordVisit(ctx, target); err != nil {
		log.Warn().Err(err).
			Str("url", logging.TruncateURL(target, logURLMaxLen)).
			Msg("failed to record history")
	}
	return nil
}

// BuildSearchURL fills template's %s placeholder with the query-escaped terms.
func BuildSearchURL(template, terms string) (string, error) {
	if !strings.Contains(template, "%s") {
		return "", ErrMissingSearchTemplate
	}
	terms = strings.TrimSpace(terms)
	if terms == "" {
		return "", ErrEmptyURL
	}
	return strings.Replace(template, "%s", url.QueryEscape(terms), 1), nil
}
