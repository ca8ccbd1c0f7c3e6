// Package autocomplete provides domain types for address-bar suggestions and
// the actions committing them resolves to.
package autocomplete

import (
	"fmt"
	"strings"
)

// ActionKind is what a suggestion does by default when committed.
type ActionKind int

const (
	KindOther ActionKind = iota
	KindTabSwitch
	KindURL
	KindSearch
)

// String returns the lower-case kind name used in logs and scenario files.
func (k ActionKind) String() string {
	switch k {
	case KindTabSwitch:
		return "tabswitch"
	case KindURL:
		return "url"
	case KindSearch:
		return "search"
	default:
		return "other"
	}
}

// ParseActionKind accepts the names produced by String plus a few aliases.
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tabswitch", "tab_switch", "switchtab":
		return KindTabSwitch, nil
	case "url":
		return KindURL, nil
	case "search":
		return KindSearch, nil
	case "other", "":
		return KindOther, nil
	default:
		return KindOther, fmt.Errorf("unknown action kind %q", s)
	}
}

// TargetRef is an opaque handle to whatever the default action operates on
// (an open tab ID for tab switches, empty otherwise).
type TargetRef string

// Suggestion represents a single autocomplete result. It is immutable for
// the lifetime of one autocomplete cycle.
type Suggestion struct {
	Kind   ActionKind
	Target TargetRef
	URL    string // Page URL, or the search terms for KindSearch
	Title  string
}

// IsTabSwitch reports whether the suggestion switches to an already-open tab.
func (s *Suggestion) IsTabSwitch() bool {
	return s != nil && s.Kind == KindTabSwitch
}

// DefaultAction is the action the suggestion performs when nothing overrides it.
func (s *Suggestion) DefaultAction() CommitAction {
	if s == nil {
		return CommitNone
	}
	switch s.Kind {
	case KindTabSwitch:
		return CommitSwitchTab
	case KindURL:
		return CommitLoadURL
	case KindSearch:
		return CommitSearch
	default:
		return CommitOther
	}
}

// DisplayURL is the URL shown in the plain URL label of a row.
func (s *Suggestion) DisplayURL() string {
	if s == nil {
		return ""
	}
	return StripProtocol(s.URL)
}

// StripProtocol removes http:// or https:// prefix from a URL for display.
func StripProtocol(url string) string {
	if strings.HasPrefix(url, "https://") {
		return url[8:]
	}
	if strings.HasPrefix(url, "http://") {
		return url[7:]
	}
	return url
}
