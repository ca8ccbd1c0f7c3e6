package autocomplete

import "testing"

func TestParseActionKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ActionKind
		wantErr bool
	}{
		{name: "tab switch", input: "tabswitch", want: KindTabSwitch},
		{name: "tab switch alias", input: "TAB_SWITCH", want: KindTabSwitch},
		{name: "url", input: "url", want: KindURL},
		{name: "search", input: " search ", want: KindSearch},
		{name: "empty is other", input: "", want: KindOther},
		{name: "unknown", input: "remotetab", want: KindOther, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseActionKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseActionKind(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseActionKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSuggestion_DefaultAction(t *testing.T) {
	tests := []struct {
		name string
		s    *Suggestion
		want CommitAction
	}{
		{name: "nil suggestion", s: nil, want: CommitNone},
		{name: "tab switch", s: &Suggestion{Kind: KindTabSwitch, Target: "tab-1"}, want: CommitSwitchTab},
		{name: "url", s: &Suggestion{Kind: KindURL, URL: "https://example.com"}, want: CommitLoadURL},
		{name: "search", s: &Suggestion{Kind: KindSearch, URL: "dummy page"}, want: CommitSearch},
		{name: "other", s: &Suggestion{Kind: KindOther}, want: CommitOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.DefaultAction(); got != tt.want {
				t.Errorf("DefaultAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSuggestion_IsTabSwitch(t *testing.T) {
	var nilSuggestion *Suggestion
	if nilSuggestion.IsTabSwitch() {
		t.Error("nil suggestion should not be a tab switch")
	}
	if !(&Suggestion{Kind: KindTabSwitch}).IsTabSwitch() {
		t.Error("KindTabSwitch should be a tab switch")
	}
	if (&Suggestion{Kind: KindURL}).IsTabSwitch() {
		t.Error("KindURL should not be a tab switch")
	}
}

func TestCommitAction_Navigates(t *testing.T) {
	navigating := map[CommitAction]bool{
		CommitNone:         false,
		CommitSwitchTab:    false,
		CommitOverrideLoad: true,
		CommitLoadURL:      true,
		CommitSearch:       true,
		CommitOther:        false,
	}
	for action, want := range navigating {
		if got := action.Navigates(); got != want {
			t.Errorf("%v.Navigates() = %v, want %v", action, got, want)
		}
	}
}

func TestStripProtocol(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "https protocol", url: "https://example.com", want: "example.com"},
		{name: "http protocol", url: "http://example.com/dummy_page.html", want: "example.com/dummy_page.html"},
		{name: "no protocol", url: "example.com", want: "example.com"},
		{name: "other scheme", url: "about:blank", want: "about:blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripProtocol(tt.url); got != tt.want {
				t.Errorf("StripProtocol(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestResultList_Navigation(t *testing.T) {
	list := NewResultList([]Suggestion{
		{Kind: KindSearch, URL: "dummy_page"},
		{Kind: KindTabSwitch, Target: "tab-1", URL: "https://example.com/dummy_page.html"},
		{Kind: KindURL, URL: "https://example.com"},
	})

	if list.Selected() != nil {
		t.Fatal("new list should have no selection")
	}

	if !list.SelectNext() || list.SelectedIndex() != 0 {
		t.Fatalf("SelectNext from none: index = %d, want 0", list.SelectedIndex())
	}
	list.SelectNext()
	if got := list.Selected(); got == nil || got.Kind != KindTabSwitch {
		t.Fatalf("second row should be the tab switch, got %+v", got)
	}

	list.SelectNext()
	list.SelectNext()
	if list.SelectedIndex() != 0 {
		t.Errorf("SelectNext should wrap to 0, got %d", list.SelectedIndex())
	}

	list.SelectPrevious()
	if list.SelectedIndex() != 2 {
		t.Errorf("SelectPrevious should wrap to last, got %d", list.SelectedIndex())
	}
}

func TestResultList_SelectOutOfRangeClears(t *testing.T) {
	list := NewResultList([]Suggestion{{Kind: KindURL}})
	list.Select(0)

	if !list.Select(5) {
		t.Fatal("clearing the selection should report a change")
	}
	if list.Selected() != nil {
		t.Error("selection should be cleared")
	}
	if list.Select(-1) {
		t.Error("clearing an empty selection should not report a change")
	}
}

func TestResultList_Empty(t *testing.T) {
	list := NewResultList(nil)
	if list.SelectNext() || list.SelectPrevious() {
		t.Error("navigation on an empty list should be a no-op")
	}
	var nilList *ResultList
	if nilList.Selected() != nil || nilList.Len() != 0 {
		t.Error("nil list should behave as empty")
	}
}
