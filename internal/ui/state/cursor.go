package state

// clamp pins i to a valid item index, or 0 for an empty list.
func (l *List) clamp(i int) int {
	return max(0, min(i, len(l.Items)-1))
}

// move sets the cursor and reports whether it changed. An empty list only
// resets the cursor.
func (l *List) move(to int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = l.clamp(to)
	return l.Cursor != old
}

// Scroll moves the cursor by delta, wrapping around either end.
func (l *List) Scroll(delta int) bool {
	n := max(len(l.Items), 1)
	return l.move(((l.Cursor+delta)%n + n) % n)
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	return l.move(0)
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	return l.move(len(l.Items) - 1)
}

// MoveCursorPageUp moves the cursor up by page rows, stopping at the top.
func (l *List) MoveCursorPageUp(page int) bool {
	return l.move(l.clamp(l.Cursor) - l.step(page))
}

// MoveCursorPageDown moves the cursor down by page rows, stopping at the
// bottom.
func (l *List) MoveCursorPageDown(page int) bool {
	return l.move(l.clamp(l.Cursor) + l.step(page))
}

// step is page bounded to [1, len]; a non-positive page means the whole
// list.
func (l *List) step(page int) int {
	n := len(l.Items)
	if page <= 0 || page > n {
		page = n
	}
	return max(page, 1)
}

// EnsureCursorVisible clamps the cursor and scrolls the viewport so that it
// shows the cursor within visible rows.
func (l *List) EnsureCursorVisible(visible int) {
	l.Cursor = l.clamp(l.Cursor)
	if len(l.Items) == 0 || visible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(len(l.Items)-visible, 0)
	offset := max(0, min(l.ViewportOffset, maxOffset))
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor >= offset+visible:
		offset = min(l.Cursor-visible+1, maxOffset)
	}
	l.ViewportOffset = offset
}
