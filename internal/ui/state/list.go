package state

import "slices"

// Item is one row of a list. ID must be unique within the list and stable
// across refreshes so marks survive reloads.
type Item struct {
	ID    string
	Label string
}

// List tracks the cursor, viewport and marks of one scrollable list. Cursor
// and ViewportOffset are view positions; the caller maps them through the
// search ordering when it needs the underlying item.
type List struct {
	ID             string
	Title          string
	Items          []Item
	Cursor         int
	ViewportOffset int
	MultiSelect    bool
	Selected       map[string]struct{}
}

// NewList constructs a List holding items.
func NewList(id, title string, items []Item) *List {
	l := &List{
		ID:       id,
		Title:    title,
		Selected: make(map[string]struct{}),
	}
	l.UpdateItems(items)
	return l
}

// Len is the number of items.
func (l *List) Len() int {
	return len(l.Items)
}

// UpdateItems replaces the items, dropping marks on vanished ids and
// clamping the cursor and viewport.
func (l *List) UpdateItems(items []Item) {
	l.Items = slices.Clone(items)
	l.CleanupSelections()
	l.Cursor = l.clamp(l.Cursor)
	if l.ViewportOffset > l.Cursor || l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
}
