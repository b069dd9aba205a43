package app

import (
	"fmt"
	"strconv"

	"github.com/alfazet/amusing/internal/format/table"
	"github.com/alfazet/amusing/internal/musing"
	"github.com/alfazet/amusing/internal/search"
	"github.com/alfazet/amusing/internal/theme"
	uistate "github.com/alfazet/amusing/internal/ui/state"
	"github.com/alfazet/amusing/internal/view"
)

const (
	unknownTitle  = "<unknown title>"
	unknownArtist = "<unknown artist>"
	unknownAlbum  = "<unknown album>"
)

// Snapshot captures what the next frame shows.
func (m *Model) Snapshot() view.Snapshot {
	s := view.Snapshot{
		Width:     m.width,
		Height:    m.height,
		Screen:    m.screen,
		Header:    m.header(),
		Footer:    m.footer(),
		Cover:     m.coverLines,
		CoverNote: m.coverNote,
	}
	switch m.screen {
	case view.ScreenQueue:
		s.Queue = m.queueView()
	case view.ScreenLibrary:
		s.Groups, s.Songs = m.libraryView()
	}
	return s
}

// Styles returns the styles frames should be drawn with.
func (m *Model) Styles() *theme.Styles {
	return m.settings.Styles
}

func (m *Model) header() view.Header {
	h := view.Header{
		Mode:    m.playback.PlaybackMode.String(),
		State:   m.playback.PlaybackState.String(),
		Gapless: m.playback.Gapless,
		Stopped: m.playback.Stopped(),
		Volume:  m.playback.Volume,
		Speed:   m.playback.Speed,
		Title:   unknownTitle,
		Artist:  unknownArtist,
		Album:   unknownAlbum,
	}
	song, ok := m.playback.CurrentSong()
	if !ok {
		return h
	}
	h.Title = song.Path
	row := m.queue.Row(*m.playback.Current)
	if title := row["tracktitle"]; title != "" {
		h.Title = title
	}
	if artist := row["artist"]; artist != "" {
		h.Artist = artist
	}
	if album := row["album"]; album != "" {
		h.Album = album
	}
	return h
}

func (m *Model) footer() view.Footer {
	f := view.Footer{Status: m.status, Error: m.statusErr}
	if t := m.playback.Timer; t != nil {
		f.Elapsed, f.Duration = t.Elapsed, t.Duration
	}
	return f
}

func (m *Model) queueView() view.List {
	tags := m.settings.QueueTags
	weights := make([]int, len(tags)+1)
	alignments := make([]table.Alignment, len(tags)+1)
	for i := range weights {
		weights[i] = len(weights) - i
	}
	alignments[len(tags)] = table.AlignRight

	songs := m.queue.Songs()
	current := -1
	if m.playback.Current != nil {
		current = *m.playback.Current
	}
	l, perm := visible(m.queueList, m.queueSearch, m.capacity(m.queueSearch))
	l.Title = "Total duration: " + musing.FormatTime(m.totalDuration())
	l.Weights = weights
	l.Alignments = alignments
	l.Focused = true
	l.Empty = "the queue is empty"
	l.Marked = make(map[int]bool)
	for v := l.First; v < l.First+len(l.Rows); v++ {
		idx := perm.at(v)
		if idx >= len(songs) {
			continue
		}
		if idx == current {
			l.Playing = v
		}
		if m.queueList.IsSelected(strconv.FormatUint(songs[idx].ID, 10)) {
			l.Marked[v] = true
		}
		l.Rows[v-l.First] = m.queueRow(idx, songs[idx])
	}
	return l
}

func (m *Model) queueRow(i int, song musing.Song) []string {
	tags := m.settings.QueueTags
	cells := make([]string, len(tags)+1)
	row := m.queue.Row(i)
	for c, tag := range tags {
		value, ok := row[tag]
		if !ok {
			value = musing.Unknown
		}
		cells[c] = value
	}
	if row == nil && len(tags) > 0 {
		cells[0] = song.Path
	}
	cells[len(tags)] = durationCell(row)
	return cells
}

func durationCell(row map[string]string) string {
	seconds, err := strconv.ParseUint(row["duration"], 10, 64)
	if err != nil {
		return "--:--"
	}
	return musing.FormatTime(seconds)
}

func (m *Model) totalDuration() uint64 {
	var total uint64
	for _, row := range m.queue.Rows() {
		if seconds, err := strconv.ParseUint(row["duration"], 10, 64); err == nil {
			total += seconds
		}
	}
	return total
}

func (m *Model) libraryView() (view.List, view.List) {
	groups, groupOrder := visible(m.groupList, m.groupSearch, m.capacity(m.groupSearch))
	groups.Title = "Library"
	groups.Weights = make([]int, len(m.settings.GroupBy))
	for i := range groups.Weights {
		groups.Weights[i] = 1
	}
	groups.Focused = m.focus == paneGroups
	groups.Empty = "loading the library"
	if m.library.Loaded() {
		groups.Empty = "the library is empty"
	}
	for v := groups.First; v < groups.First+len(groups.Rows); v++ {
		if group, ok := m.library.Group(groupOrder.at(v)); ok {
			groups.Rows[v-groups.First] = group.Key
		}
	}

	songs, songOrder := visible(m.songList, m.songSearch, m.capacity(m.songSearch))
	songs.Weights = []int{1}
	songs.Focused = m.focus == paneSongs
	songs.Empty = "no songs"
	for v := songs.First; v < songs.First+len(songs.Rows); v++ {
		idx := songOrder.at(v)
		if idx < m.songList.Len() {
			songs.Rows[v-songs.First] = []string{m.songList.Items[idx].Label}
		}
	}
	if group, ok := m.library.Group(m.songsOf); ok {
		songs.Title = fmt.Sprintf("%s (%d)", group.Label(), len(group.Songs))
	}
	return groups, songs
}

// order is one copy of a session's ordering, so a frame never mixes two
// published permutations.
type order []int

func (o order) at(v int) int {
	if v < 0 || v >= len(o) {
		return v
	}
	return o[v]
}

// visible prepares the window of l that fits in capacity rows. Rows are
// allocated but left for the caller to fill.
func visible(l *uistate.List, sess *search.Session, capacity int) (view.List, order) {
	out := view.List{
		First:   l.ViewportOffset,
		Cursor:  l.Cursor,
		Playing: -1,
	}
	if sess.Active() {
		in := sess.Input()
		out.Search = &view.Search{
			Value:   in.Value(),
			Cursor:  in.Cursor(),
			Editing: sess.Mode() == search.On,
		}
	}
	n := l.Len() - l.ViewportOffset
	if n > capacity {
		n = capacity
	}
	if n > 0 {
		out.Rows = make([][]string, n)
	}
	return out, order(sess.Ordering())
}
