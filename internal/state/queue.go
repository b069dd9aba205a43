package state

import (
	"slices"

	"github.com/alfazet/amusing/internal/musing"
)

// QueueStore holds the play queue as last reported by the server together
// with the tag rows fetched for it.
type QueueStore interface {
	Songs() []musing.Song
	SetSongs([]musing.Song)
	Paths() []string
	Rows() []map[string]string
	// SetRows stores metadata fetched for paths. It reports false and keeps
	// the old rows when paths no longer match the queue.
	SetRows(paths []string, rows []map[string]string) bool
	Row(i int) map[string]string
}

type queueStore struct {
	songs []musing.Song
	rows  []map[string]string
}

func NewQueueStore() QueueStore {
	return &queueStore{}
}

func (q *queueStore) Songs() []musing.Song {
	return cloneSongs(q.songs)
}

func (q *queueStore) SetSongs(songs []musing.Song) {
	if !slices.Equal(pathsOf(songs), pathsOf(q.songs)) {
		q.rows = nil
	}
	q.songs = cloneSongs(songs)
}

func (q *queueStore) Paths() []string {
	return pathsOf(q.songs)
}

func (q *queueStore) Rows() []map[string]string {
	return cloneRows(q.rows)
}

func (q *queueStore) SetRows(paths []string, rows []map[string]string) bool {
	if !slices.Equal(paths, pathsOf(q.songs)) || len(rows) != len(q.songs) {
		return false
	}
	q.rows = cloneRows(rows)
	return true
}

func (q *queueStore) Row(i int) map[string]string {
	if i < 0 || i >= len(q.rows) {
		return nil
	}
	return q.rows[i]
}

func pathsOf(songs []musing.Song) []string {
	if len(songs) == 0 {
		return nil
	}
	paths := make([]string, len(songs))
	for i, song := range songs {
		paths[i] = song.Path
	}
	return paths
}

func cloneSongs(songs []musing.Song) []musing.Song {
	if len(songs) == 0 {
		return nil
	}
	dup := make([]musing.Song, len(songs))
	copy(dup, songs)
	return dup
}

func cloneRows(rows []map[string]string) []map[string]string {
	if len(rows) == 0 {
		return nil
	}
	dup := make([]map[string]string, len(rows))
	copy(dup, rows)
	return dup
}
