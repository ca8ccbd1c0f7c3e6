package input

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/omnibar/internal/logging"
)

// Modifier is a modifier key family. The tracker follows its left and right
// variants separately.
type Modifier int

const (
	ModShift Modifier = iota
	ModAlt
	ModControl
	ModSuper
)

// String returns the config name of the modifier.
func (m Modifier) String() string {
	switch m {
	case ModShift:
		return "shift"
	case ModAlt:
		return "alt"
	case ModControl:
		return "ctrl"
	case ModSuper:
		return "super"
	default:
		return "unknown"
	}
}

// ParseModifier parses a config value such as "shift" or "Ctrl".
func ParseModifier(s string) (Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shift", "":
		return ModShift, nil
	case "alt", "option":
		return ModAlt, nil
	case "ctrl", "control":
		return ModControl, nil
	case "super", "meta", "cmd":
		return ModSuper, nil
	default:
		return ModShift, fmt.Errorf("unknown modifier %q (want shift, alt, ctrl or super)", s)
	}
}

// Matches reports whether key is one of this modifier's physical keys.
func (m Modifier) Matches(key Key) bool {
	mod, ok := ModifierFor(key)
	return ok && mod == m
}

// ChordPrefix is the prefix terminal key strings use for this modifier ("shift+").
func (m Modifier) ChordPrefix() string {
	return m.String() + "+"
}

// ModifierTracker follows the physical held state of a single override modifier.
// It is owned by one controller and is not safe for concurrent use.
type ModifierTracker struct {
	modifier Modifier
	// down is indexed by KeySide.
	down     [3]bool
	onChange func(held bool)
	ctx      context.Context
}

// NewModifierTracker creates a tracker watching mod.
func NewModifierTracker(ctx context.Context, mod Modifier) *ModifierTracker {
	return &ModifierTracker{
		modifier: mod,
		ctx:      ctx,
	}
}

// Modifier returns the watched modifier.
func (t *ModifierTracker) Modifier() Modifier {
	return t.modifier
}

// Held reports whether the modifier is currently down.
func (t *ModifierTracker) Held() bool {
	return t.down[SideAny] || t.down[SideLeft] || t.down[SideRight]
}

// SetOnChange sets the callback fired on held-state notifications.
// The callback is invoked synchronously.
func (t *ModifierTracker) SetOnChange(fn func(held bool)) {
	t.onChange = fn
}

// OnKeyDown records a key press. Key repeat for an already-held modifier is
// swallowed. Returns true when a change notification was emitted.
func (t *ModifierTracker) OnKeyDown(key Key) bool {
	if !t.modifier.Matches(key) {
		return false
	}
	wasHeld := t.Held()
	t.down[key.Side()] = true
	if wasHeld {
		return false
	}
	logging.FromContext(t.ctx).Trace().
		Str("modifier", t.modifier.String()).
		Str("key", string(key)).
		Msg("override modifier pressed")
	t.notify()
	return true
}

// OnKeyUp records a key release. A release of the watched modifier always
// notifies, even when it was not known to be held, so no stuck state survives.
// Releasing one side keeps the other side held. A release without a side
// clears both.
func (t *ModifierTracker) OnKeyUp(key Key) bool {
	if !t.modifier.Matches(key) {
		return false
	}
	side := key.Side()
	if side == SideAny {
		t.down = [3]bool{}
	} else {
		t.down[side] = false
		t.down[SideAny] = false
	}
	logging.FromContext(t.ctx).Trace().
		Str("modifier", t.modifier.String()).
		Str("key", string(key)).
		Msg("override modifier released")
	t.notify()
	return true
}

// Reset forgets the held state without notifying. Used when focus is lost,
// since the matching key-up may be delivered to another widget.
func (t *ModifierTracker) Reset() {
	t.down = [3]bool{}
}

func (t *ModifierTracker) notify() {
	if t.onChange != nil {
		t.onChange(t.Held())
	}
}
