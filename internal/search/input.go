package search

import (
	"unicode"

	"github.com/alfazet/amusing/internal/logging/events"
)

// Input is the editable pattern of a search session. The cursor is a rune
// offset into the value.
type Input struct {
	list   string
	value  []rune
	cursor int
}

// Value returns the current text.
func (in *Input) Value() string {
	return string(in.value)
}

// Cursor returns the rune offset of the cursor.
func (in *Input) Cursor() int {
	if in.cursor < 0 {
		return 0
	}
	if in.cursor > len(in.value) {
		return len(in.value)
	}
	return in.cursor
}

func (in *Input) set(value []rune, cursor int) {
	in.value = value
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(value) {
		cursor = len(value)
	}
	in.cursor = cursor
}

// Clear empties the input.
func (in *Input) Clear() bool {
	if len(in.value) == 0 {
		return false
	}
	in.set(nil, 0)
	events.Filter.Cleared(in.list)
	return true
}

// Insert inserts text at the cursor.
func (in *Input) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := in.Cursor()
	updated := make([]rune, 0, len(in.value)+len(insert))
	updated = append(updated, in.value[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, in.value[pos:]...)
	in.set(updated, pos+len(insert))
	events.Filter.Append(in.list, in.Value())
	return true
}

// DeleteRuneBackward deletes the rune before the cursor.
func (in *Input) DeleteRuneBackward() bool {
	pos := in.Cursor()
	if pos == 0 {
		return false
	}
	updated := append(append([]rune(nil), in.value[:pos-1]...), in.value[pos:]...)
	in.set(updated, pos-1)
	events.Filter.Backspace(in.list, in.Value())
	return true
}

// DeleteRuneForward deletes the rune under the cursor.
func (in *Input) DeleteRuneForward() bool {
	pos := in.Cursor()
	if pos >= len(in.value) {
		return false
	}
	updated := append(append([]rune(nil), in.value[:pos]...), in.value[pos+1:]...)
	in.set(updated, pos)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (in *Input) DeleteWordBackward() bool {
	pos := in.Cursor()
	if pos == 0 {
		return false
	}
	i := wordStart(in.value, pos)
	updated := append(append([]rune(nil), in.value[:i]...), in.value[pos:]...)
	in.set(updated, i)
	events.Filter.WordBackspace(in.list, in.Value())
	return true
}

// MoveStart moves the cursor to the start.
func (in *Input) MoveStart() bool {
	if in.Cursor() == 0 {
		return false
	}
	in.cursor = 0
	events.Filter.Cursor(in.list, 0)
	return true
}

// MoveEnd moves the cursor to the end.
func (in *Input) MoveEnd() bool {
	end := len(in.value)
	if in.Cursor() == end {
		return false
	}
	in.cursor = end
	events.Filter.Cursor(in.list, end)
	return true
}

// MoveRuneBackward moves the cursor one rune backward.
func (in *Input) MoveRuneBackward() bool {
	pos := in.Cursor()
	if pos == 0 {
		return false
	}
	in.cursor = pos - 1
	events.Filter.Cursor(in.list, in.cursor)
	return true
}

// MoveRuneForward moves the cursor one rune forward.
func (in *Input) MoveRuneForward() bool {
	pos := in.Cursor()
	if pos >= len(in.value) {
		return false
	}
	in.cursor = pos + 1
	events.Filter.Cursor(in.list, in.cursor)
	return true
}

// MoveWordBackward moves the cursor to the start of the previous word.
func (in *Input) MoveWordBackward() bool {
	pos := in.Cursor()
	i := wordStart(in.value, pos)
	if i == pos {
		return false
	}
	in.cursor = i
	events.Filter.CursorWord(in.list, i)
	return true
}

// MoveWordForward moves the cursor past the next word.
func (in *Input) MoveWordForward() bool {
	pos := in.Cursor()
	i := pos
	for i < len(in.value) && !unicode.IsSpace(in.value[i]) {
		i++
	}
	for i < len(in.value) && unicode.IsSpace(in.value[i]) {
		i++
	}
	if i == pos {
		return false
	}
	in.cursor = i
	events.Filter.CursorWord(in.list, i)
	return true
}

func wordStart(value []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(value[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(value[i-1]) {
		i--
	}
	return i
}
