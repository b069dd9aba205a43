package state

// CleanupSelections drops marks whose ids are no longer in the list.
func (l *List) CleanupSelections() {
	if len(l.Selected) == 0 {
		return
	}
	valid := make(map[string]struct{}, len(l.Items))
	for _, item := range l.Items {
		valid[item.ID] = struct{}{}
	}
	for id := range l.Selected {
		if _, ok := valid[id]; !ok {
			delete(l.Selected, id)
		}
	}
}

// IsSelected reports whether the given id is marked.
func (l *List) IsSelected(id string) bool {
	if l.Selected == nil {
		return false
	}
	_, ok := l.Selected[id]
	return ok
}

// ToggleSelection flips the mark on id and reports whether it is now set.
func (l *List) ToggleSelection(id string) bool {
	if l.Selected == nil {
		l.Selected = make(map[string]struct{})
	}
	if _, ok := l.Selected[id]; ok {
		delete(l.Selected, id)
		return false
	}
	l.Selected[id] = struct{}{}
	return true
}

// ClearSelection clears all marks.
func (l *List) ClearSelection() {
	for id := range l.Selected {
		delete(l.Selected, id)
	}
}

// SelectedItems returns the marked items in list order.
func (l *List) SelectedItems() []Item {
	if len(l.Selected) == 0 {
		return nil
	}
	selected := make([]Item, 0, len(l.Selected))
	for _, item := range l.Items {
		if l.IsSelected(item.ID) {
			selected = append(selected, item)
		}
	}
	return selected
}
