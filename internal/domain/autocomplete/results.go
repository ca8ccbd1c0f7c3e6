package autocomplete

// ResultList is the ordered result set of one autocomplete cycle together
// with the highlighted row. Index -1 means nothing is highlighted.
type ResultList struct {
	items    []Suggestion
	selected int
}

// NewResultList creates a list with nothing highlighted.
func NewResultList(items []Suggestion) *ResultList {
	cp := make([]Suggestion, len(items))
	copy(cp, items)
	return &ResultList{items: cp, selected: -1}
}

// Len returns the number of results.
func (l *ResultList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the suggestion at index, or nil when out of range.
func (l *ResultList) At(index int) *Suggestion {
	if l == nil || index < 0 || index >= len(l.items) {
		return nil
	}
	return &l.items[index]
}

// SelectedIndex returns the highlighted index or -1.
func (l *ResultList) SelectedIndex() int {
	if l == nil {
		return -1
	}
	return l.selected
}

// Selected returns the highlighted suggestion, or nil.
func (l *ResultList) Selected() *Suggestion {
	return l.At(l.SelectedIndex())
}

// Select highlights index. Out-of-range indexes clear the selection.
// Returns true when the highlighted row changed.
func (l *ResultList) Select(index int) bool {
	if index < 0 || index >= len(l.items) {
		index = -1
	}
	if index == l.selected {
		return false
	}
	l.selected = index
	return true
}

// SelectNext moves the highlight down, wrapping to the first row.
func (l *ResultList) SelectNext() bool {
	if len(l.items) == 0 {
		return false
	}
	next := l.selected + 1
	if next >= len(l.items) {
		next = 0
	}
	return l.Select(next)
}

// SelectPrevious moves the highlight up, wrapping to the last row.
func (l *ResultList) SelectPrevious() bool {
	if len(l.items) == 0 {
		return false
	}
	prev := l.selected - 1
	if prev < 0 {
		prev = len(l.items) - 1
	}
	return l.Select(prev)
}
