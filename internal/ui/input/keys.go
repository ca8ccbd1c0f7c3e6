// Package input provides key naming and modifier tracking for the omnibox.
package input

import "strings"

// Key names a physical key as reported by the toolkit ("Shift", "Shift_L",
// "ArrowDown", "Enter"). Comparison is case-insensitive.
type Key string

const (
	KeyShift     Key = "Shift"
	KeyAlt       Key = "Alt"
	KeyControl   Key = "Control"
	KeySuper     Key = "Super"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
	KeyTab       Key = "Tab"
)

// Normalize returns the canonical lower-case form of the key name.
// "KEY_Shift" (test harness style) and "Shift" normalize to the same value.
func (k Key) Normalize() string {
	name := strings.ToLower(strings.TrimSpace(string(k)))
	return strings.TrimPrefix(name, "key_")
}

// Is reports whether k and other name the same key.
func (k Key) Is(other Key) bool {
	return k.Normalize() == other.Normalize()
}

// KeySide tells the left and right variants of a modifier apart.
type KeySide int

const (
	// SideAny is a key reported without a side, such as "Shift".
	SideAny KeySide = iota
	SideLeft
	SideRight
)

// Side returns which physical variant k names. Keys without a side suffix
// report SideAny.
func (k Key) Side() KeySide {
	name := k.Normalize()
	switch {
	case strings.HasSuffix(name, "_l"), strings.HasSuffix(name, "left"):
		return SideLeft
	case strings.HasSuffix(name, "_r"), strings.HasSuffix(name, "right"):
		return SideRight
	default:
		return SideAny
	}
}

var modifierKeyNames = map[Modifier][]string{
	ModShift:   {"shift", "shift_l", "shift_r", "shiftleft", "shiftright"},
	ModAlt:     {"alt", "alt_l", "alt_r", "altleft", "altright", "option"},
	ModControl: {"control", "ctrl", "control_l", "control_r", "controlleft", "controlright"},
	ModSuper:   {"super", "super_l", "super_r", "meta", "os", "cmd", "command"},
}

// ModifierFor returns the modifier a key belongs to, if any.
func ModifierFor(k Key) (Modifier, bool) {
	name := k.Normalize()
	for mod, names := range modifierKeyNames {
		for _, n := range names {
			if n == name {
				return mod, true
			}
		}
	}
	return 0, false
}
