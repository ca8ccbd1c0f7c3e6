package browser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/omnibar/internal/application/usecase"
	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/domain/entity"
	"github.com/bnema/omnibar/internal/infrastructure/browser"
	"github.com/bnema/omnibar/internal/ui/component"
	"github.com/bnema/omnibar/internal/ui/input"
)

const testPage = "https://example.com/browser/dummy_page.html"

type fixture struct {
	browser  *browser.Browser
	rec      *browser.Recorder
	ctrl     *component.ActionOverrideController
	original entity.Tab
	target   entity.Tab
}

// newFixture opens the target page in a second tab, switches back to the
// original tab and highlights the "switch to tab" row for the target.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	b := browser.New(ctx)
	original := b.OpenTab(ctx, "about:blank", true)
	target := b.OpenTab(ctx, testPage, true)
	require.NoError(t, b.SwitchToTab(ctx, original.ID))

	rec := browser.NewRecorder()
	b.Subscribe(rec.Record)

	dispatch := usecase.NewDispatchCommitUseCase(b, b, nil, "https://duckduckgo.com/?q=%s")
	ctrl := component.NewActionOverrideController(ctx, component.ActionOverrideConfig{
		Enabled:    true,
		Modifier:   input.ModShift,
		Dispatcher: dispatch,
	})

	suggestion := &autocomplete.Suggestion{
		Kind:   autocomplete.KindTabSwitch,
		Target: autocomplete.TargetRef(target.ID),
		URL:    testPage,
	}
	mustHandle(t, ctrl, component.PopupOpen(), component.SelectionChanged(suggestion))

	return &fixture{browser: b, rec: rec, ctrl: ctrl, original: original, target: target}
}

func mustHandle(t *testing.T, ctrl *component.ActionOverrideController, events ...component.Event) component.Result {
	t.Helper()
	var res component.Result
	for _, ev := range events {
		var err error
		res, err = ctrl.HandleEvent(context.Background(), ev)
		require.NoError(t, err)
	}
	return res
}

func (f *fixture) activeID(t *testing.T) entity.TabID {
	t.Helper()
	tab, ok := f.browser.ActiveTab()
	require.True(t, ok)
	return tab.ID
}

func TestOverride_NormalCommitSwitchesToExistingTab(t *testing.T) {
	f := newFixture(t)

	res := mustHandle(t, f.ctrl, component.Commit())

	assert.Equal(t, autocomplete.CommitSwitchTab, res.Action)
	assert.Equal(t, f.target.ID, f.activeID(t))
	assert.Zero(t, f.rec.Count(browser.EventLoad), "no navigation")
	_, open := f.browser.Tab(f.target.ID)
	assert.True(t, open, "target tab stays open")
}

func TestOverride_HeldModifierLoadsInCurrentTab(t *testing.T) {
	f := newFixture(t)

	res := mustHandle(t, f.ctrl, component.KeyDown(input.KeyShift))
	require.True(t, res.Overriding)
	assert.Equal(t, component.AffordanceVisibility{URLLabel: true}, res.Affordances)

	res = mustHandle(t, f.ctrl, component.Commit())
	assert.Equal(t, autocomplete.CommitOverrideLoad, res.Action)

	assert.Equal(t, f.original.ID, f.activeID(t))
	original, _ := f.browser.Tab(f.original.ID)
	assert.Equal(t, testPage, original.URL)
	assert.Equal(t, 1, f.rec.CountFor(browser.EventLoad, f.original.ID))
	assert.Zero(t, f.rec.Count(browser.EventTabSelect))

	target, open := f.browser.Tab(f.target.ID)
	assert.True(t, open)
	assert.Equal(t, 1, target.LoadCount, "target tab untouched")
}

func TestOverride_ReleaseBeforeCommitSwitches(t *testing.T) {
	f := newFixture(t)

	mustHandle(t, f.ctrl, component.KeyDown(input.KeyShift), component.KeyUp(input.KeyShift))
	res := mustHandle(t, f.ctrl, component.Commit())

	assert.Equal(t, autocomplete.CommitSwitchTab, res.Action)
	assert.Equal(t, f.target.ID, f.activeID(t))
	assert.Zero(t, f.rec.Count(browser.EventLoad))
}

func TestOverride_BlurRefocusCommitSwitches(t *testing.T) {
	f := newFixture(t)

	mustHandle(t, f.ctrl, component.KeyDown(input.KeyShift))
	require.True(t, f.ctrl.IsOverriding())
	mustHandle(t, f.ctrl, component.Blur())
	require.False(t, f.ctrl.IsOverriding())
	mustHandle(t, f.ctrl, component.Focus())

	res := mustHandle(t, f.ctrl, component.Commit())
	assert.Equal(t, autocomplete.CommitSwitchTab, res.Action)
	assert.Equal(t, f.target.ID, f.activeID(t))
	assert.Zero(t, f.rec.Count(browser.EventLoad))
}

func TestOverride_OtherKindCommitIsNoOp(t *testing.T) {
	f := newFixture(t)
	other := &autocomplete.Suggestion{Kind: autocomplete.KindOther, URL: "https://example.org/"}

	mustHandle(t, f.ctrl, component.SelectionChanged(other), component.KeyDown(input.KeyShift))
	assert.False(t, f.ctrl.IsOverriding())

	res := mustHandle(t, f.ctrl, component.Commit())
	assert.Equal(t, autocomplete.CommitOther, res.Action)
	assert.Equal(t, f.original.ID, f.activeID(t))
	assert.Zero(t, f.rec.Count(browser.EventLoad))
	assert.Zero(t, f.rec.Count(browser.EventTabSelect))
}
