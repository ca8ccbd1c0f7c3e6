package autocomplete

// CommitAction is the resolved effect of committing a suggestion.
type CommitAction int

const (
	// CommitNone means nothing was selected; nothing happens.
	CommitNone CommitAction = iota
	// CommitSwitchTab focuses the already-open tab; no navigation.
	CommitSwitchTab
	// CommitOverrideLoad loads a tab-switch suggestion's URL fresh in the current tab.
	CommitOverrideLoad
	// CommitLoadURL loads the suggestion's URL in the current tab.
	CommitLoadURL
	// CommitSearch runs the suggestion's terms through the default search engine.
	CommitSearch
	// CommitOther is left to whatever owns the suggestion type.
	CommitOther
)

func (a CommitAction) String() string {
	switch a {
	case CommitNone:
		return "none"
	case CommitSwitchTab:
		return "switch-tab"
	case CommitOverrideLoad:
		return "override-load"
	case CommitLoadURL:
		return "load-url"
	case CommitSearch:
		return "search"
	default:
		return "other"
	}
}

// Navigates reports whether the action loads a page in the current tab.
func (a CommitAction) Navigates() bool {
	return a == CommitOverrideLoad || a == CommitLoadURL || a == CommitSearch
}
