package app

import (
	"strconv"

	"github.com/alfazet/amusing/internal/keybind"
	"github.com/alfazet/amusing/internal/logging/events"
	"github.com/alfazet/amusing/internal/musing"
	"github.com/alfazet/amusing/internal/search"
	"github.com/alfazet/amusing/internal/view"
)

// otherRequests maps bindings that send a bare request to its kind.
var otherRequests = map[keybind.Binding]string{
	keybind.Toggle:         "toggle",
	keybind.Pause:          "pause",
	keybind.Resume:         "resume",
	keybind.Stop:           "stop",
	keybind.Next:           "next",
	keybind.Previous:       "previous",
	keybind.ClearQueue:     "clearqueue",
	keybind.ModeGapless:    "gapless",
	keybind.ModeRandom:     "random",
	keybind.ModeSequential: "sequential",
	keybind.ModeSingle:     "single",
}

func (m *Model) handleKey(key keybind.Key) {
	_, sess := m.activeList()
	editing := sess != nil && sess.Mode() == search.On
	if editing != m.searchKeys {
		m.resolver.Reset()
		m.searchKeys = editing
	}
	trie := m.settings.Keymap.Normal
	if editing {
		trie = m.settings.Keymap.Search
	}
	res := m.resolver.Feed(trie, key)
	switch res.Outcome {
	case keybind.Matched:
		m.apply(res.Binding)
	case keybind.NoMatch:
		if editing {
			for _, k := range res.Keys {
				m.editSearch(sess, k)
			}
		}
	}
}

// apply runs one binding against the focused screen.
func (m *Model) apply(b keybind.Binding) {
	if kind, ok := otherRequests[b]; ok {
		m.send(b, musing.Other(kind))
		return
	}
	list, sess := m.activeList()
	switch b {
	case keybind.Quit:
		events.App.Quit("binding")
		m.done = true
	case keybind.ScrollUp, keybind.ScrollDown:
		if list == nil {
			return
		}
		delta := 1
		if b == keybind.ScrollUp {
			delta = -1
		}
		list.Scroll(delta)
		events.UI.Cursor(list.ID, list.Cursor)
	case keybind.ScrollManyUp, keybind.ScrollManyDown:
		if list == nil {
			return
		}
		half := max(m.capacity(sess)/2, 1)
		if b == keybind.ScrollManyUp {
			list.MoveCursorPageUp(half)
		} else {
			list.MoveCursorPageDown(half)
		}
		events.UI.Cursor(list.ID, list.Cursor)
	case keybind.ScrollTop:
		if list != nil {
			list.MoveCursorHome()
		}
	case keybind.ScrollBottom:
		if list != nil {
			list.MoveCursorEnd()
		}
	case keybind.FocusLeft, keybind.FocusRight:
		if m.screen != view.ScreenLibrary {
			return
		}
		m.focus = paneGroups
		if b == keybind.FocusRight {
			m.focus = paneSongs
		}
		events.UI.Focus(m.focus.String())
	case keybind.NextScreen:
		m.setScreen(m.screen.Next())
	case keybind.QueueScreen:
		m.setScreen(view.ScreenQueue)
	case keybind.LibraryScreen:
		m.setScreen(view.ScreenLibrary)
	case keybind.CoverScreen:
		m.setScreen(view.ScreenCover)
	case keybind.Play:
		if m.screen == view.ScreenQueue {
			m.playSelected(b)
		} else {
			m.addSelected(b)
		}
	case keybind.AddToQueue:
		m.addSelected(b)
	case keybind.SeekForwards:
		m.send(b, musing.SeekRequest{Seconds: m.settings.SeekStep})
	case keybind.SeekBackwards:
		m.send(b, musing.SeekRequest{Seconds: -m.settings.SeekStep})
	case keybind.VolumeUp:
		m.send(b, musing.VolumeRequest{Delta: m.settings.VolumeStep})
	case keybind.VolumeDown:
		m.send(b, musing.VolumeRequest{Delta: -m.settings.VolumeStep})
	case keybind.SpeedUp:
		m.send(b, musing.SpeedRequest{Delta: m.settings.SpeedStep})
	case keybind.SpeedDown:
		m.send(b, musing.SpeedRequest{Delta: -m.settings.SpeedStep})
	case keybind.RemoveFromQueue:
		m.removeSelected(b)
	case keybind.ToggleMark:
		m.toggleMark()
	case keybind.MusingUpdate:
		m.send(b, musing.UpdateRequest{})
		m.setStatus("updating the database", false)
	case keybind.StartSearch:
		if sess != nil && sess.Start() {
			list.Cursor = 0
			list.ViewportOffset = 0
		}
	case keybind.EndSearch:
		if sess == nil {
			return
		}
		idx, ok := realIndex(list, sess)
		if sess.Stop() && ok {
			list.Cursor = idx
		}
	case keybind.IdleSearch:
		if sess != nil {
			sess.Idle()
		}
	}
}

func (m *Model) send(b keybind.Binding, req musing.Request) {
	events.Action.Submit(b.String(), req.Kind())
	m.submit(req)
}

// playSelected starts the queue entry under the cursor.
func (m *Model) playSelected(b keybind.Binding) {
	idx, ok := realIndex(m.queueList, m.queueSearch)
	if !ok {
		return
	}
	songs := m.queue.Songs()
	if idx >= len(songs) {
		return
	}
	m.send(b, musing.PlayRequest{ID: songs[idx].ID})
}

// addSelected appends the group or song under the library cursor to the
// queue.
func (m *Model) addSelected(b keybind.Binding) {
	if m.screen != view.ScreenLibrary {
		return
	}
	gi, ok := realIndex(m.groupList, m.groupSearch)
	if !ok {
		return
	}
	group, ok := m.library.Group(gi)
	if !ok {
		return
	}
	if m.focus == paneGroups {
		m.send(b, musing.AddQueueRequest{Paths: group.Paths()})
		return
	}
	si, ok := realIndex(m.songList, m.songSearch)
	if !ok || si >= len(group.Songs) {
		return
	}
	m.send(b, musing.AddQueueRequest{Paths: []string{group.Songs[si].Path}})
}

// removeSelected drops every marked queue entry, or the one under the
// cursor when nothing is marked.
func (m *Model) removeSelected(b keybind.Binding) {
	if m.screen != view.ScreenQueue {
		return
	}
	var ids []uint64
	for _, item := range m.queueList.SelectedItems() {
		if id, err := strconv.ParseUint(item.ID, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		idx, ok := realIndex(m.queueList, m.queueSearch)
		if !ok {
			return
		}
		songs := m.queue.Songs()
		if idx >= len(songs) {
			return
		}
		ids = []uint64{songs[idx].ID}
	}
	m.queueList.ClearSelection()
	m.send(b, musing.RemoveRequest{IDs: ids})
}

func (m *Model) toggleMark() {
	if m.screen != view.ScreenQueue {
		return
	}
	idx, ok := realIndex(m.queueList, m.queueSearch)
	if !ok {
		return
	}
	item := m.queueList.Items[idx]
	marked := m.queueList.ToggleSelection(item.ID)
	events.UI.Mark(m.queueList.ID, idx, marked)
}

// editSearch applies a key that no search binding claimed to the pattern.
func (m *Model) editSearch(sess *search.Session, key keybind.Key) {
	in := sess.Input()
	before := in.Value()
	ctrl := key.Mods&keybind.ModCtrl != 0
	alt := key.Mods&keybind.ModAlt != 0
	switch key.Code {
	case keybind.CodeRune:
		switch {
		case ctrl && key.Rune == 'w', alt && key.Rune == 'h':
			in.DeleteWordBackward()
		case ctrl && key.Rune == 'u':
			in.Clear()
		case ctrl && key.Rune == 'a':
			in.MoveStart()
		case ctrl && key.Rune == 'e':
			in.MoveEnd()
		case ctrl && key.Rune == 'b':
			in.MoveRuneBackward()
		case ctrl && key.Rune == 'f':
			in.MoveRuneForward()
		case alt && key.Rune == 'b':
			in.MoveWordBackward()
		case alt && key.Rune == 'f':
			in.MoveWordForward()
		case !ctrl && !alt:
			in.Insert(string(key.Rune))
		}
	case keybind.CodeBackspace:
		if ctrl || alt {
			in.DeleteWordBackward()
		} else {
			in.DeleteRuneBackward()
		}
	case keybind.CodeDelete:
		in.DeleteRuneForward()
	case keybind.CodeLeft:
		if ctrl || alt {
			in.MoveWordBackward()
		} else {
			in.MoveRuneBackward()
		}
	case keybind.CodeRight:
		if ctrl || alt {
			in.MoveWordForward()
		} else {
			in.MoveRuneForward()
		}
	case keybind.CodeHome:
		in.MoveStart()
	case keybind.CodeEnd:
		in.MoveEnd()
	}
	if in.Value() == before {
		return
	}
	sess.PatternChanged()
	list, _ := m.activeList()
	if list != nil {
		list.Cursor = 0
		list.ViewportOffset = 0
	}
}
