// Package dispatcher turns raw omnibox input into controller events.
package dispatcher

import (
	"context"
	"sync"

	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/logging"
	"github.com/bnema/omnibar/internal/ui/component"
	"github.com/bnema/omnibar/internal/ui/input"
)

// KeyboardDispatcher routes omnibox keys to the result list and the action
// override controller. It owns the popup's result list.
type KeyboardDispatcher struct {
	mu        sync.Mutex
	ctrl      *component.ActionOverrideController
	shortcuts input.ShortcutTable
	results   *autocomplete.ResultList
	open      bool
	onClose   func()
}

// NewKeyboardDispatcher creates a new KeyboardDispatcher.
func NewKeyboardDispatcher(ctx context.Context, ctrl *component.ActionOverrideController) *KeyboardDispatcher {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating keyboard dispatcher")

	return &KeyboardDispatcher{
		ctrl:      ctrl,
		shortcuts: input.DefaultShortcuts(),
		results:   autocomplete.NewResultList(nil),
	}
}

// SetOnClose sets the callback run after the popup closes (commit or Escape).
func (d *KeyboardDispatcher) SetOnClose(fn func()) {
	d.onClose = fn
}

// Controller returns the controller events are delivered to.
func (d *KeyboardDispatcher) Controller() *component.ActionOverrideController {
	return d.ctrl
}

// Results returns the current result list.
func (d *KeyboardDispatcher) Results() *autocomplete.ResultList {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.results
}

// IsOpen reports whether the popup is showing.
func (d *KeyboardDispatcher) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Open shows the popup with a fresh result set. Nothing is highlighted.
func (d *KeyboardDispatcher) Open(ctx context.Context, items []autocomplete.Suggestion) (component.Result, error) {
	d.mu.Lock()
	d.results = autocomplete.NewResultList(items)
	d.open = true
	d.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("results", len(items)).Msg("omnibox opened")
	return d.ctrl.HandleEvent(ctx, component.PopupOpen())
}

// Close hides the popup without committing.
func (d *KeyboardDispatcher) Close(ctx context.Context) (component.Result, error) {
	res, err := d.ctrl.HandleEvent(ctx, component.PopupClose())
	d.closed()
	return res, err
}

// Select highlights the row at index (-1 clears the highlight).
func (d *KeyboardDispatcher) Select(ctx context.Context, index int) (component.Result, error) {
	d.mu.Lock()
	d.results.Select(index)
	selected := d.results.Selected()
	d.mu.Unlock()
	return d.ctrl.HandleEvent(ctx, component.SelectionChanged(selected))
}

// KeyDown handles a key press. Bound keys run their omnibox action, every
// key is also reported to the controller so modifiers are tracked.
func (d *KeyboardDispatcher) KeyDown(ctx context.Context, key input.Key) (component.Result, error) {
	if _, isModifier := input.ModifierFor(key); isModifier {
		return d.ctrl.HandleEvent(ctx, component.KeyDown(key))
	}
	if action, ok := d.shortcuts.Lookup(key); ok {
		return d.Dispatch(ctx, action)
	}
	return d.ctrl.HandleEvent(ctx, component.KeyDown(key))
}

// KeyUp handles a key release.
func (d *KeyboardDispatcher) KeyUp(ctx context.Context, key input.Key) (component.Result, error) {
	return d.ctrl.HandleEvent(ctx, component.KeyUp(key))
}

// Click commits the row at index.
func (d *KeyboardDispatcher) Click(ctx context.Context, index int) (component.Result, error) {
	d.mu.Lock()
	target := d.results.At(index)
	if target != nil {
		d.results.Select(index)
	}
	d.mu.Unlock()

	if target == nil {
		logging.FromContext(ctx).Debug().Int("index", index).Msg("click outside result list")
		return d.ctrl.HandleEvent(ctx, component.SelectionChanged(nil))
	}
	return d.commit(ctx, component.Click(target))
}

// Blur reports that the omnibox input lost focus.
func (d *KeyboardDispatcher) Blur(ctx context.Context) (component.Result, error) {
	return d.ctrl.HandleEvent(ctx, component.Blur())
}

// Focus reports that the omnibox input regained focus.
func (d *KeyboardDispatcher) Focus(ctx context.Context) (component.Result, error) {
	return d.ctrl.HandleEvent(ctx, component.Focus())
}

// Dispatch runs an omnibox action.
func (d *KeyboardDispatcher) Dispatch(ctx context.Context, action input.Action) (component.Result, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("action", string(action)).Msg("dispatching keyboard action")

	switch action {
	case input.ActionSelectNext:
		return d.move(ctx, (*autocomplete.ResultList).SelectNext)
	case input.ActionSelectPrevious:
		return d.move(ctx, (*autocomplete.ResultList).SelectPrevious)
	case input.ActionCommit:
		return d.commit(ctx, component.Commit())
	case input.ActionClose:
		return d.Close(ctx)
	default:
		log.Warn().Str("action", string(action)).Msg("unhandled keyboard action")
	}

	return component.Result{Overriding: d.ctrl.IsOverriding(), Affordances: d.ctrl.Affordances()}, nil
}

func (d *KeyboardDispatcher) move(ctx context.Context, step func(*autocomplete.ResultList) bool) (component.Result, error) {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return component.Result{Overriding: d.ctrl.IsOverriding(), Affordances: d.ctrl.Affordances()}, nil
	}
	step(d.results)
	selected := d.results.Selected()
	d.mu.Unlock()
	return d.ctrl.HandleEvent(ctx, component.SelectionChanged(selected))
}

func (d *KeyboardDispatcher) commit(ctx context.Context, ev component.Event) (component.Result, error) {
	res, err := d.ctrl.HandleEvent(ctx, ev)
	if res.Action != autocomplete.CommitNone {
		d.closed()
	}
	return res, err
}

func (d *KeyboardDispatcher) closed() {
	d.mu.Lock()
	wasOpen := d.open
	d.open = false
	d.results = autocomplete.NewResultList(nil)
	d.mu.Unlock()

	if wasOpen && d.onClose != nil {
		d.onClose()
	}
}
