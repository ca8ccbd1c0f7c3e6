// Package component holds toolkit-independent omnibox view logic.
package component

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/omnibar/internal/application/port"
	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/logging"
	"github.com/bnema/omnibar/internal/ui/input"
)

// OverrideMode is the state of the action override state machine.
type OverrideMode int

const (
	// ModeNormal commits suggestions with their default action.
	ModeNormal OverrideMode = iota
	// ModeOverriding loads the selected tab-switch suggestion instead of switching.
	ModeOverriding
)

// String returns a human-readable mode name.
func (m OverrideMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeOverriding:
		return "overriding"
	default:
		return "unknown"
	}
}

// OverrideState is the authoritative override flag. Only the controller mutates it.
type OverrideState struct {
	Active bool
}

// Mode maps the flag to the state machine mode.
func (s OverrideState) Mode() OverrideMode {
	if s.Active {
		return ModeOverriding
	}
	return ModeNormal
}

// EventType names the inputs the controller reacts to.
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventSelectionChanged
	EventCommit
	EventBlur
	EventFocus
	EventPopupOpen
	EventPopupClose
	EventFeatureToggled
)

func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventSelectionChanged:
		return "select"
	case EventCommit:
		return "commit"
	case EventBlur:
		return "blur"
	case EventFocus:
		return "focus"
	case EventPopupOpen:
		return "open"
	case EventPopupClose:
		return "close"
	case EventFeatureToggled:
		return "toggle"
	default:
		return "unknown"
	}
}

// Event is one input delivered to HandleEvent.
type Event struct {
	Type EventType
	// Key is set for key events.
	Key input.Key
	// Suggestion is the new selection for EventSelectionChanged (nil clears it).
	// For EventCommit it is the clicked row; nil commits the current selection.
	Suggestion *autocomplete.Suggestion
	// Enabled is the new feature flag value for EventFeatureToggled.
	Enabled bool
}

// KeyDown builds a key press event.
func KeyDown(key input.Key) Event { return Event{Type: EventKeyDown, Key: key} }

// KeyUp builds a key release event.
func KeyUp(key input.Key) Event { return Event{Type: EventKeyUp, Key: key} }

// SelectionChanged builds a selection event; s may be nil.
func SelectionChanged(s *autocomplete.Suggestion) Event {
	return Event{Type: EventSelectionChanged, Suggestion: s}
}

// Commit builds an Enter-style commit of the current selection.
func Commit() Event { return Event{Type: EventCommit} }

// Click builds a commit of a specific row.
func Click(s *autocomplete.Suggestion) Event { return Event{Type: EventCommit, Suggestion: s} }

// Blur builds a focus-loss event.
func Blur() Event { return Event{Type: EventBlur} }

// Focus builds a focus-gain event.
func Focus() Event { return Event{Type: EventFocus} }

// PopupOpen builds a popup-open event.
func PopupOpen() Event { return Event{Type: EventPopupOpen} }

// PopupClose builds a popup-close event.
func PopupClose() Event { return Event{Type: EventPopupClose} }

// FeatureToggled builds a feature flag change event.
func FeatureToggled(enabled bool) Event { return Event{Type: EventFeatureToggled, Enabled: enabled} }

// Result describes the controller after an event was handled.
type Result struct {
	// Action is the resolved commit action; CommitNone for non-commit events.
	Action      autocomplete.CommitAction
	Overriding  bool
	Affordances AffordanceVisibility
}

// ActionOverrideConfig holds configuration for creating an ActionOverrideController.
type ActionOverrideConfig struct {
	Enabled    bool
	Modifier   input.Modifier
	Dispatcher port.CommitDispatcher // optional
}

// ActionOverrideController lets a held modifier turn the selected
// "switch to tab" suggestion into a fresh page load.
//
// The override is active exactly when the modifier is held, the feature is
// enabled, the input has focus, the popup is open and the selection is a
// tab switch. All transitions happen synchronously inside HandleEvent.
type ActionOverrideController struct {
	mu sync.Mutex

	state     OverrideState
	tracker   *input.ModifierTracker
	enabled   bool
	focused   bool
	popupOpen bool
	selected  *autocomplete.Suggestion
	rendered  AffordanceVisibility

	dispatcher port.CommitDispatcher

	// Observers, called synchronously after the state update (outside the lock).
	onOverrideChange func(active bool)
	onRender         func(AffordanceVisibility)

	// pending collects tracker notifications raised inside HandleEvent.
	pending notifications

	ctx context.Context
}

// NewActionOverrideController creates a controller in Normal mode with the
// input unfocused and the popup closed.
func NewActionOverrideController(ctx context.Context, cfg ActionOverrideConfig) *ActionOverrideController {
	ctx = logging.WithComponent(ctx, "action-override")
	log := logging.FromContext(ctx)

	c := &ActionOverrideController{
		tracker:    input.NewModifierTracker(ctx, cfg.Modifier),
		enabled:    cfg.Enabled,
		dispatcher: cfg.Dispatcher,
		ctx:        ctx,
	}
	c.tracker.SetOnChange(c.modifierChangedLocked)

	log.Debug().
		Bool("enabled", cfg.Enabled).
		Str("modifier", cfg.Modifier.String()).
		Msg("action override controller created")
	return c
}

// SetOnOverrideChange sets the hook fired when the override flag flips.
// UI layers use it to mark the view (e.g. a bordered panel).
func (c *ActionOverrideController) SetOnOverrideChange(fn func(active bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOverrideChange = fn
}

// SetOnRender sets the hook fired with every recomputed affordance snapshot.
func (c *ActionOverrideController) SetOnRender(fn func(AffordanceVisibility)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRender = fn
}

// IsOverriding reports whether the override is currently active.
func (c *ActionOverrideController) IsOverriding() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Active
}

// State returns a snapshot of the override state.
func (c *ActionOverrideController) State() OverrideState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Affordances returns the last rendered affordance snapshot.
func (c *ActionOverrideController) Affordances() AffordanceVisibility {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rendered
}

// Enabled reports the feature flag.
func (c *ActionOverrideController) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// ModifierHeld reports whether the override modifier is known to be down.
func (c *ActionOverrideController) ModifierHeld() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Held()
}

// Modifier returns the configured override modifier.
func (c *ActionOverrideController) Modifier() input.Modifier {
	return c.tracker.Modifier()
}

// SetEnabled flips the feature flag (e.g. from a config reload).
func (c *ActionOverrideController) SetEnabled(enabled bool) {
	_, _ = c.HandleEvent(c.ctx, FeatureToggled(enabled))
}

// ResolveCommitAction returns the action committing s would perform right now.
// It reads the live state on every call; nothing is cached between render and commit.
func (c *ActionOverrideController) ResolveCommitAction(s *autocomplete.Suggestion) autocomplete.CommitAction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked(s)
}

func (c *ActionOverrideController) resolveLocked(s *autocomplete.Suggestion) autocomplete.CommitAction {
	if c.state.Active && s.IsTabSwitch() {
		return autocomplete.CommitOverrideLoad
	}
	return s.DefaultAction()
}

// notifications collects observer calls to run after the lock is released.
type notifications struct {
	overrideChanged bool
	active          bool
	render          bool
	snapshot        AffordanceVisibility
}

// HandleEvent is the single entry point for omnibox input. Events must be
// delivered in arrival order. Commit events dispatch the resolved action and
// return the dispatcher's error, if any.
func (c *ActionOverrideController) HandleEvent(ctx context.Context, ev Event) (Result, error) {
	log := logging.FromContext(c.ctx)

	c.mu.Lock()

	var (
		n       notifications
		action  = autocomplete.CommitNone
		commit  *autocomplete.Suggestion
		forceRe bool
	)

	switch ev.Type {
	case EventKeyDown:
		// Keys only reach a focused input.
		if c.focused {
			c.tracker.OnKeyDown(ev.Key)
		}
		n = c.takePendingLocked()

	case EventKeyUp:
		c.tracker.OnKeyUp(ev.Key)
		n = c.takePendingLocked()

	case EventSelectionChanged:
		c.selected = copySuggestion(ev.Suggestion)
		forceRe = true

	case EventCommit:
		if ev.Suggestion != nil {
			// A click selects the row it lands on.
			c.selected = copySuggestion(ev.Suggestion)
			n = c.recomputeLocked("click-select", false)
		}
		action = c.resolveLocked(c.selected)
		if action == autocomplete.CommitNone {
			log.Debug().Msg("commit with no selection")
			break
		}
		commit = copySuggestion(c.selected)
		// Committing hides the popup and moves focus to the page.
		c.popupOpen = false
		c.focused = false
		c.selected = nil
		c.tracker.Reset()

	case EventBlur:
		c.focused = false
		// The matching key-up may land on another widget; forget the key.
		c.tracker.Reset()

	case EventFocus:
		c.focused = true

	case EventPopupOpen:
		c.popupOpen = true
		c.focused = true
		c.selected = nil
		forceRe = true

	case EventPopupClose:
		c.popupOpen = false
		c.selected = nil
		c.tracker.Reset()

	case EventFeatureToggled:
		c.enabled = ev.Enabled

	default:
		log.Warn().Int("event", int(ev.Type)).Msg("ignoring unknown omnibox event")
	}

	after := c.recomputeLocked(ev.Type.String(), forceRe)
	n = mergeNotifications(n, after)

	res := Result{
		Action:      action,
		Overriding:  c.state.Active,
		Affordances: c.rendered,
	}
	onOverride := c.onOverrideChange
	onRender := c.onRender
	dispatcher := c.dispatcher
	c.mu.Unlock()

	if n.render && onRender != nil {
		onRender(n.snapshot)
	}
	if n.overrideChanged && onOverride != nil {
		onOverride(n.active)
	}

	if commit == nil || dispatcher == nil {
		return res, nil
	}

	log.Debug().
		Str("action", action.String()).
		Str("kind", commit.Kind.String()).
		Msg("dispatching commit")
	if err := dispatcher.Dispatch(ctx, port.CommitRequest{Action: action, Suggestion: *commit}); err != nil {
		return res, fmt.Errorf("commit %s: %w", action, err)
	}
	return res, nil
}

// modifierChangedLocked is the tracker's change hook. The tracker only runs
// inside HandleEvent, so c.mu is already held.
func (c *ActionOverrideController) modifierChangedLocked(held bool) {
	reason := "modifier-released"
	if held {
		reason = "modifier-pressed"
	}
	// A notification always re-renders, even when nothing flipped.
	c.pending = mergeNotifications(c.pending, c.recomputeLocked(reason, true))
}

func (c *ActionOverrideController) takePendingLocked() notifications {
	n := c.pending
	c.pending = notifications{}
	return n
}

// recomputeLocked re-derives the override flag and affordances from the
// inputs. Must be called with c.mu held.
func (c *ActionOverrideController) recomputeLocked(reason string, forceRender bool) notifications {
	want := c.tracker.Held() && c.enabled && c.focused && c.popupOpen && c.selected.IsTabSwitch()
	snapshot := renderFor(c.selected, want)

	var n notifications
	if want != c.state.Active {
		log := logging.FromContext(c.ctx)
		from := c.state.Mode()
		c.state.Active = want
		log.Debug().
			Str("from", from.String()).
			Str("to", c.state.Mode().String()).
			Str("reason", reason).
			Msg("action override transition")
		n.overrideChanged = true
		n.active = want
	}

	if forceRender || n.overrideChanged || snapshot != c.rendered {
		c.rendered = snapshot
		n.render = true
		n.snapshot = snapshot
	}
	return n
}

// mergeNotifications keeps the latest value of each notification. An
// override that flips and flips back within one event still reports once.
func mergeNotifications(first, second notifications) notifications {
	out := first
	if second.overrideChanged {
		out.overrideChanged = true
		out.active = second.active
	}
	if second.render {
		out.render = true
		out.snapshot = second.snapshot
	}
	return out
}

func copySuggestion(s *autocomplete.Suggestion) *autocomplete.Suggestion {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
