package input

// Action represents what a key does inside the omnibox popup.
type Action string

// Predefined omnibox actions.
const (
	ActionSelectNext     Action = "select_next"
	ActionSelectPrevious Action = "select_previous"
	ActionCommit         Action = "commit"
	ActionClose          Action = "close"
)

// ShortcutTable maps a key to an Action.
type ShortcutTable map[string]Action

// DefaultShortcuts returns the omnibox bindings. Tab cycles like ArrowDown.
func DefaultShortcuts() ShortcutTable {
	return ShortcutTable{
		KeyArrowDown.Normalize(): ActionSelectNext,
		KeyTab.Normalize():       ActionSelectNext,
		KeyArrowUp.Normalize():   ActionSelectPrevious,
		KeyEnter.Normalize():     ActionCommit,
		"return":                 ActionCommit,
		KeyEscape.Normalize():    ActionClose,
		"esc":                    ActionClose,
		"down":                   ActionSelectNext,
		"up":                     ActionSelectPrevious,
	}
}

// Lookup returns the action bound to key, if any.
func (t ShortcutTable) Lookup(key Key) (Action, bool) {
	action, ok := t[key.Normalize()]
	return action, ok
}
