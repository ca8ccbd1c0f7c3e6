package component

import "github.com/bnema/omnibar/internal/domain/autocomplete"

// AffordanceVisibility is the visible state of the tab-switch specific row
// elements for the selected suggestion. It is a derived snapshot.
type AffordanceVisibility struct {
	SwitchTabLabel  bool // "Switch to Tab" label in the label box
	SwitchTabButton bool // per-row tab-switch action button
	URLLabel        bool // plain URL label shown when the row will load instead
}

// SwitchTabVisible reports whether any switch-to-tab affordance is shown.
func (v AffordanceVisibility) SwitchTabVisible() bool {
	return v.SwitchTabLabel || v.SwitchTabButton
}

// RenderAffordances decides which affordances are shown for a selection of
// kind while the override is (or is not) active.
//
// For a tab-switch selection exactly one of {switch-tab, URL} is visible.
// Other kinds show none of them; their ordinary labels follow their own rules.
func RenderAffordances(kind autocomplete.ActionKind, overrideActive bool) AffordanceVisibility {
	if kind != autocomplete.KindTabSwitch {
		return AffordanceVisibility{}
	}
	if overrideActive {
		return AffordanceVisibility{URLLabel: true}
	}
	return AffordanceVisibility{
		SwitchTabLabel:  true,
		SwitchTabButton: true,
	}
}

// renderFor renders for a possibly nil selection.
func renderFor(selected *autocomplete.Suggestion, overrideActive bool) AffordanceVisibility {
	if selected == nil {
		return AffordanceVisibility{}
	}
	return RenderAffordances(selected.Kind, overrideActive)
}
