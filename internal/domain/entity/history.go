package entity

import (
	"strings"
	"time"
)

// HistoryEntry is one address the commit dispatcher loaded, with its visit
// count. Tab switches never produce entries.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	VisitCount  int64     `json:"visit_count"`
	LastVisited time.Time `json:"last_visited"`
	CreatedAt   time.Time `json:"created_at"`
}

// Matches reports whether the lower-cased needle occurs in the URL.
// An empty needle matches every entry.
func (h *HistoryEntry) Matches(needle string) bool {
	return containsFold(needle, h.URL)
}

// containsFold expects needle already lower-cased.
func containsFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
