// Package entity holds the browser-side domain objects the commit dispatcher operates on.
package entity

import "time"

// TabID uniquely identifies a tab.
type TabID string

// Tab represents an open browser tab showing a single page.
type Tab struct {
	ID        TabID
	URL       string
	Title     string
	Position  int // Position in the tab bar (0-indexed)
	LoadCount int // Number of navigations started in this tab
	CreatedAt time.Time
}

// NewTab creates a tab showing url.
func NewTab(id TabID, url string) *Tab {
	return &Tab{
		ID:        id,
		URL:       url,
		CreatedAt: time.Now(),
	}
}

// DisplayTitle returns the title, falling back to URL or "New Tab".
func (t *Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" {
		return t.URL
	}
	return "New Tab"
}

// Matches reports whether the lower-cased needle occurs in the URL or title.
func (t *Tab) Matches(needle string) bool {
	return containsFold(needle, t.URL, t.Title)
}

// TabList manages an ordered collection of tabs.
type TabList struct {
	Tabs        []*Tab
	ActiveTabID TabID
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs: make([]*Tab, 0),
	}
}

// Add appends a tab to the list. The first tab added becomes active.
func (tl *TabList) Add(tab *Tab) {
	tab.Position = len(tl.Tabs)
	tl.Tabs = append(tl.Tabs, tab)
	if tl.ActiveTabID == "" {
		tl.ActiveTabID = tab.ID
	}
}

// Remove removes a tab by ID and reindexes positions.
func (tl *TabList) Remove(id TabID) bool {
	for i, tab := range tl.Tabs {
		if tab.ID != id {
			continue
		}
		tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)
		for j := i; j < len(tl.Tabs); j++ {
			tl.Tabs[j].Position = j
		}
		if tl.ActiveTabID == id {
			switch {
			case len(tl.Tabs) == 0:
				tl.ActiveTabID = ""
			case i < len(tl.Tabs):
				tl.ActiveTabID = tl.Tabs[i].ID
			default:
				tl.ActiveTabID = tl.Tabs[len(tl.Tabs)-1].ID
			}
		}
		return true
	}
	return false
}

// Find returns a tab by ID.
func (tl *TabList) Find(id TabID) *Tab {
	for _, tab := range tl.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// FindByURL returns the first tab showing url.
func (tl *TabList) FindByURL(url string) *Tab {
	for _, tab := range tl.Tabs {
		if tab.URL == url {
			return tab
		}
	}
	return nil
}

// ActiveTab returns the currently active tab.
func (tl *TabList) ActiveTab() *Tab {
	return tl.Find(tl.ActiveTabID)
}

// SetActive makes id the active tab. Returns false if the tab does not exist.
func (tl *TabList) SetActive(id TabID) bool {
	if tl.Find(id) == nil {
		return false
	}
	tl.ActiveTabID = id
	return true
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}
