package scenario

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/omnibar/internal/application/usecase"
	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/domain/entity"
	"github.com/bnema/omnibar/internal/domain/repository"
	"github.com/bnema/omnibar/internal/infrastructure/browser"
	"github.com/bnema/omnibar/internal/logging"
	"github.com/bnema/omnibar/internal/ui/component"
	"github.com/bnema/omnibar/internal/ui/dispatcher"
	"github.com/bnema/omnibar/internal/ui/input"
)

// ErrExpectationFailed is returned when a replayed step does not match its expectations.
var ErrExpectationFailed = errors.New("scenario expectation failed")

const defaultSearchEngine = "https://duckduckgo.com/?q=%s"

// Options configure replay.
type Options struct {
	// History records loads, when set.
	History repository.HistoryRepository
	// Parallelism bounds RunAll; 0 means GOMAXPROCS.
	Parallelism int
}

// StepReport is the observed state after one step.
type StepReport struct {
	Index       int
	Event       string
	Detail      string
	Overriding  bool
	Affordances component.AffordanceVisibility
	Action      autocomplete.CommitAction
	ActiveTab   string
	Err         error
	Failures    []string
}

// Passed reports whether every expectation of the step held.
func (s StepReport) Passed() bool {
	return len(s.Failures) == 0
}

// Report is the outcome of one scenario.
type Report struct {
	Name  string
	Path  string
	Steps []StepReport
	// Err is a setup error or ErrExpectationFailed.
	Err error
}

// Passed reports whether the scenario ran and met every expectation.
func (r Report) Passed() bool {
	return r.Err == nil
}

// Failures returns the number of failed steps.
func (r Report) Failures() int {
	n := 0
	for _, s := range r.Steps {
		if !s.Passed() {
			n++
		}
	}
	return n
}

// session wires one scenario to a fresh browser, controller and key dispatcher.
type session struct {
	sc      *Scenario
	browser *browser.Browser
	rec     *browser.Recorder
	keys    *dispatcher.KeyboardDispatcher
	ids     map[string]string // alias -> tab id
	aliases map[string]string // tab id -> alias
	rows    []autocomplete.Suggestion
}

// Run replays sc and returns its report. The returned error equals Report.Err.
func Run(ctx context.Context, sc *Scenario, opts Options) (Report, error) {
	ctx = logging.WithScenario(ctx, sc.Name)
	log := logging.FromContext(ctx)

	report := Report{Name: sc.Name, Path: sc.Path}

	sess, err := newSession(ctx, sc, opts)
	if err != nil {
		report.Err = err
		return report, err
	}

	failed := false
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			report.Err = err
			return report, err
		}
		sr := sess.apply(ctx, i, step)
		if !sr.Passed() {
			failed = true
			log.Debug().Int("step", i).Strs("failures", sr.Failures).Msg("step failed")
		}
		report.Steps = append(report.Steps, sr)
	}

	if failed {
		report.Err = fmt.Errorf("%w: %s (%d of %d steps)", ErrExpectationFailed, sc.Name, report.Failures(), len(sc.Steps))
	}
	log.Debug().Bool("passed", !failed).Int("steps", len(sc.Steps)).Msg("scenario replayed")
	return report, report.Err
}

// RunAll replays scenarios in parallel. Reports keep the input order; the error
// joins every failing scenario's error.
func RunAll(ctx context.Context, scenarios []*Scenario, opts Options) ([]Report, error) {
	reports := make([]Report, len(scenarios))
	errs := make([]error, len(scenarios))

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, sc := range scenarios {
		g.Go(func() error {
			// Expectation failures do not cancel the other scenarios.
			reports[i], errs[i] = Run(gctx, sc, opts)
			if errs[i] != nil && !errors.Is(errs[i], ErrExpectationFailed) {
				return errs[i]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, errors.Join(errs...)
}

func newSession(ctx context.Context, sc *Scenario, opts Options) (*session, error) {
	mod, err := input.ParseModifier(sc.Config.Modifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	b := browser.New(ctx)
	ids := make(map[string]string, len(sc.Tabs))
	aliases := make(map[string]string, len(sc.Tabs))
	for i, t := range sc.Tabs {
		url := t.URL
		if url == "" {
			url = "about:blank"
		}
		tab := b.OpenTab(ctx, url, i == 0)
		ids[t.ID] = string(tab.ID)
		aliases[string(tab.ID)] = t.ID
	}
	if sc.Active != "" {
		if err := b.SwitchToTab(ctx, entity.TabID(ids[sc.Active])); err != nil {
			return nil, fmt.Errorf("failed to activate %s: %w", sc.Active, err)
		}
	}

	search := sc.Config.SearchEngine
	if search == "" {
		search = defaultSearchEngine
	}

	// Setup events are not part of the session.
	rec := browser.NewRecorder()
	b.Subscribe(rec.Record)

	dispatch := usecase.NewDispatchCommitUseCase(b, b, opts.History, search)
	ctrl := component.NewActionOverrideController(ctx, component.ActionOverrideConfig{
		Enabled:    sc.Config.IsEnabled(),
		Modifier:   mod,
		Dispatcher: dispatch,
	})

	return &session{
		sc:      sc,
		browser: b,
		rec:     rec,
		keys:    dispatcher.NewKeyboardDispatcher(ctx, ctrl),
		ids:     ids,
		aliases: aliases,
		rows:    sc.suggestions(ids),
	}, nil
}

func (s *session) apply(ctx context.Context, index int, step Step) StepReport {
	sr := StepReport{Index: index, Event: step.Event}

	var (
		res component.Result
		err error
	)
	switch step.Event {
	case EventOpen:
		res, err = s.keys.Open(ctx, s.rows)
	case EventClose:
		res, err = s.keys.Close(ctx)
	case EventKeyDown:
		sr.Detail = step.Key
		res, err = s.keys.KeyDown(ctx, input.Key(step.Key))
	case EventKeyUp:
		sr.Detail = step.Key
		res, err = s.keys.KeyUp(ctx, input.Key(step.Key))
	case EventDown:
		res, err = s.keys.Dispatch(ctx, input.ActionSelectNext)
	case EventUp:
		res, err = s.keys.Dispatch(ctx, input.ActionSelectPrevious)
	case EventSelect:
		sr.Detail = fmt.Sprintf("#%d", *step.Index)
		res, err = s.keys.Select(ctx, *step.Index)
	case EventClick:
		sr.Detail = fmt.Sprintf("#%d", *step.Index)
		res, err = s.keys.Click(ctx, *step.Index)
	case EventCommit:
		res, err = s.keys.Dispatch(ctx, input.ActionCommit)
	case EventBlur:
		res, err = s.keys.Blur(ctx)
	case EventFocus:
		res, err = s.keys.Focus(ctx)
	case EventToggle:
		sr.Detail = fmt.Sprintf("enabled=%t", *step.Enabled)
		res, err = s.keys.Controller().HandleEvent(ctx, component.FeatureToggled(*step.Enabled))
	default:
		err = fmt.Errorf("%w: unknown event %q", ErrInvalidScenario, step.Event)
	}

	sr.Overriding = res.Overriding
	sr.Affordances = res.Affordances
	sr.Action = res.Action
	sr.Err = err
	if tab, ok := s.browser.ActiveTab(); ok {
		sr.ActiveTab = s.aliases[string(tab.ID)]
	}

	sr.Failures = s.check(step, sr)
	return sr
}

func (s *session) check(step Step, sr StepReport) []string {
	var failures []string
	failf := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	exp := step.Expect
	if exp == nil {
		if sr.Err != nil {
			failf("unexpected error: %v", sr.Err)
		}
		return failures
	}

	switch {
	case exp.Error != "" && sr.Err == nil:
		failf("expected error containing %q, got none", exp.Error)
	case exp.Error != "" && !strings.Contains(sr.Err.Error(), exp.Error):
		failf("expected error containing %q, got %v", exp.Error, sr.Err)
	case exp.Error == "" && sr.Err != nil:
		failf("unexpected error: %v", sr.Err)
	}

	ctrl := s.keys.Controller()
	if exp.Overriding != nil {
		if got := ctrl.IsOverriding(); got != *exp.Overriding {
			failf("overriding = %t, want %t", got, *exp.Overriding)
		}
	}
	if a := exp.Affordances; a != nil {
		got := ctrl.Affordances()
		if a.SwitchTab != nil && got.SwitchTabVisible() != *a.SwitchTab {
			failf("switch-tab affordance visible = %t, want %t", got.SwitchTabVisible(), *a.SwitchTab)
		}
		if a.URLLabel != nil && got.URLLabel != *a.URLLabel {
			failf("url label visible = %t, want %t", got.URLLabel, *a.URLLabel)
		}
	}
	if exp.Action != "" && sr.Action.String() != exp.Action {
		failf("action = %s, want %s", sr.Action, exp.Action)
	}
	if exp.Resolve != "" {
		got := ctrl.ResolveCommitAction(s.keys.Results().Selected())
		if got.String() != exp.Resolve {
			failf("resolved action = %s, want %s", got, exp.Resolve)
		}
	}
	if exp.Selected != nil {
		if got := s.keys.Results().SelectedIndex(); got != *exp.Selected {
			failf("selected = %d, want %d", got, *exp.Selected)
		}
	}
	if exp.ActiveTab != "" && sr.ActiveTab != exp.ActiveTab {
		failf("active tab = %q, want %q", sr.ActiveTab, exp.ActiveTab)
	}
	for alias, want := range exp.TabURL {
		tab, ok := s.browser.Tab(entity.TabID(s.ids[alias]))
		switch {
		case !ok:
			failf("tab %q is closed", alias)
		case tab.URL != want:
			failf("tab %q url = %q, want %q", alias, tab.URL, want)
		}
	}
	for alias, want := range exp.Loads {
		if got := s.rec.CountFor(browser.EventLoad, entity.TabID(s.ids[alias])); got != want {
			failf("loads in %q = %d, want %d", alias, got, want)
		}
	}
	if exp.TabSelects != nil {
		if got := s.rec.Count(browser.EventTabSelect); got != *exp.TabSelects {
			failf("tab selects = %d, want %d", got, *exp.TabSelects)
		}
	}
	if exp.TabsOpen != nil {
		if got := len(s.browser.Tabs()); got != *exp.TabsOpen {
			failf("open tabs = %d, want %d", got, *exp.TabsOpen)
		}
	}
	return failures
}
