package app

import (
	"strconv"
	"strings"

	"github.com/alfazet/amusing/internal/musing"
	"github.com/alfazet/amusing/internal/search"
	uistate "github.com/alfazet/amusing/internal/ui/state"
	"github.com/alfazet/amusing/internal/view"
)

// syncQueue rebuilds the queue list and its search corpus from the store.
func (m *Model) syncQueue() {
	songs := m.queue.Songs()
	items := make([]uistate.Item, len(songs))
	corpus := make([]string, len(songs))
	for i, song := range songs {
		label := m.queueLabel(i, song)
		items[i] = uistate.Item{ID: strconv.FormatUint(song.ID, 10), Label: label}
		corpus[i] = label
	}
	m.queueList.UpdateItems(items)
	m.queueSearch.SetList(corpus)
}

// queueLabel is the searchable text of a queue entry: its displayed tags,
// or the path while metadata is missing.
func (m *Model) queueLabel(i int, song musing.Song) string {
	row := m.queue.Row(i)
	if row == nil {
		return song.Path
	}
	values := make([]string, 0, len(m.settings.QueueTags))
	for _, tag := range m.settings.QueueTags {
		if value, ok := row[tag]; ok {
			values = append(values, value)
		}
	}
	if len(values) == 0 {
		return song.Path
	}
	return strings.Join(values, " ")
}

// syncLibrary rebuilds the group list after a select reply.
func (m *Model) syncLibrary() {
	groups := m.library.Groups()
	items := make([]uistate.Item, len(groups))
	corpus := make([]string, len(groups))
	for i, group := range groups {
		label := group.Label()
		items[i] = uistate.Item{ID: label, Label: label}
		corpus[i] = label
	}
	m.groupList.UpdateItems(items)
	m.groupSearch.SetList(corpus)
	m.songsOf = -1
	m.syncSongs()
}

// syncSongs shows the songs of the group under the cursor. The song list
// keeps its cursor and search while the group stays the same.
func (m *Model) syncSongs() {
	idx := -1
	if m.groupList.Len() > 0 {
		idx = m.groupSearch.RealIndex(m.groupList.Cursor)
	}
	if idx == m.songsOf {
		return
	}
	m.songsOf = idx
	group, ok := m.library.Group(idx)
	if !ok {
		m.songList.UpdateItems(nil)
		m.songSearch.SetList(nil)
		return
	}
	items := make([]uistate.Item, len(group.Songs))
	corpus := make([]string, len(group.Songs))
	for i, song := range group.Songs {
		title := song.Title()
		items[i] = uistate.Item{ID: song.Path, Label: title}
		corpus[i] = title
	}
	m.songList.Cursor = 0
	m.songList.ViewportOffset = 0
	m.songList.UpdateItems(items)
	m.songSearch.SetList(corpus)
}

// activeList returns the focused list and its search session, or nil on
// the cover screen.
func (m *Model) activeList() (*uistate.List, *search.Session) {
	switch m.screen {
	case view.ScreenQueue:
		return m.queueList, m.queueSearch
	case view.ScreenLibrary:
		if m.focus == paneSongs {
			return m.songList, m.songSearch
		}
		return m.groupList, m.groupSearch
	}
	return nil, nil
}

// capacity is the number of rows of l visible on screen.
func (m *Model) capacity(sess *search.Session) int {
	return view.ListCapacity(m.height, sess.Active())
}

func (m *Model) syncViewports() {
	m.queueList.EnsureCursorVisible(m.capacity(m.queueSearch))
	m.groupList.EnsureCursorVisible(m.capacity(m.groupSearch))
	m.syncSongs()
	m.songList.EnsureCursorVisible(m.capacity(m.songSearch))
}

// realIndex maps the cursor of l through its search ordering.
func realIndex(l *uistate.List, sess *search.Session) (int, bool) {
	if l.Len() == 0 {
		return 0, false
	}
	idx := sess.RealIndex(l.Cursor)
	if idx < 0 || idx >= l.Len() {
		return 0, false
	}
	return idx, true
}
