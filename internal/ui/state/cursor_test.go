package state

import "testing"

func newTestList(ids ...string) *List {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewList("test", "Test", items)
}

func TestMoveCursorHome(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 2
	if !l.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := newTestList()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty list")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 0
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}

	empty := newTestList()
	if empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty list")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 0
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on second page down")
	}
	if l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(2) {
		t.Fatalf("expected movement on page up")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", l.Cursor)
	}
	if !l.MoveCursorPageUp(10) {
		t.Fatalf("expected movement back to start")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.ViewportOffset = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}

	l.Cursor = -1
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", l.Cursor)
	}

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}
}

func TestScrollWraps(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.Scroll(-1) || l.Cursor != 2 {
		t.Fatalf("expected wrap to last item, got %d", l.Cursor)
	}
	if !l.Scroll(1) || l.Cursor != 0 {
		t.Fatalf("expected wrap to first item, got %d", l.Cursor)
	}
	l.Scroll(7)
	if l.Cursor != 1 {
		t.Fatalf("expected cursor 1 after scrolling 7, got %d", l.Cursor)
	}

	empty := newTestList()
	if empty.Scroll(1) {
		t.Fatalf("expected no movement for empty list")
	}
}

func TestUpdateItemsClampsAndDropsMarks(t *testing.T) {
	l := newTestList("a", "b", "c", "d")
	l.Cursor = 3
	l.ViewportOffset = 3
	l.ToggleSelection("b")
	l.ToggleSelection("d")

	l.UpdateItems([]Item{{ID: "a"}, {ID: "b"}})
	if l.Cursor != 1 {
		t.Fatalf("expected cursor clamped to 1, got %d", l.Cursor)
	}
	if l.ViewportOffset != 0 {
		t.Fatalf("expected viewport reset, got %d", l.ViewportOffset)
	}
	if !l.IsSelected("b") || l.IsSelected("d") {
		t.Fatalf("unexpected marks %v", l.Selected)
	}
	got := l.SelectedItems()
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected selected items %v", got)
	}
	if l.ToggleSelection("b") {
		t.Fatalf("second toggle should clear the mark")
	}
	l.ToggleSelection("a")
	l.ClearSelection()
	if len(l.SelectedItems()) != 0 {
		t.Fatalf("expected no marks after clear")
	}
}
