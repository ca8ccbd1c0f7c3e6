package styles

import (
	"fmt"
	"time"

	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/ui/component"
)

// Badge texts for the tab-switch affordances.
const (
	SwitchTabLabel  = "Switch to Tab"
	SwitchTabButton = IconTab + " switch"
	OverrideLabel   = "load here"
)

// VisitBadge renders a visit count badge.
func (t *Theme) VisitBadge(count int64) string {
	text := fmt.Sprintf("%d visits", count)
	if count == 1 {
		text = "1 visit"
	}
	return t.BadgeMuted.Render(text)
}

// TimeBadge renders a relative time badge.
func (t *Theme) TimeBadge(tm time.Time) string {
	return t.BadgeMuted.Render(RelativeTime(tm))
}

// OverrideBadge renders the mode indicator shown next to the omnibox.
func (t *Theme) OverrideBadge(active bool) string {
	if active {
		return t.BadgeOverride.Render(component.ModeOverriding.String())
	}
	return t.BadgeMuted.Render(component.ModeNormal.String())
}

// AffordanceBadge renders the switch-to-tab affordance of a row. buttonStyle
// picks the per-row button rendering over the label. Empty when hidden.
func (t *Theme) AffordanceBadge(v component.AffordanceVisibility, buttonStyle bool) string {
	switch {
	case buttonStyle && v.SwitchTabButton:
		return t.Badge.Render(SwitchTabButton)
	case !buttonStyle && v.SwitchTabLabel:
		return t.Badge.Render(SwitchTabLabel)
	case v.URLLabel:
		return t.BadgeOverride.Render(OverrideLabel)
	default:
		return ""
	}
}

// ActionBadge renders a resolved commit action.
func (t *Theme) ActionBadge(a autocomplete.CommitAction) string {
	switch a {
	case autocomplete.CommitNone:
		return t.BadgeMuted.Render(a.String())
	case autocomplete.CommitOverrideLoad:
		return t.BadgeOverride.Render(a.String())
	default:
		return t.Badge.Render(a.String())
	}
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	diff := time.Since(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
