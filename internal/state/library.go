package state

import "github.com/alfazet/amusing/internal/musing"

// LibraryStore holds the library as groups of songs sharing the group-by
// tag values.
type LibraryStore interface {
	Groups() []musing.Group
	SetGroups([]musing.Group)
	Group(i int) (musing.Group, bool)
	Loaded() bool
}

type libraryStore struct {
	groups []musing.Group
	loaded bool
}

func NewLibraryStore() LibraryStore {
	return &libraryStore{}
}

func (l *libraryStore) Groups() []musing.Group {
	return cloneGroups(l.groups)
}

func (l *libraryStore) SetGroups(groups []musing.Group) {
	l.groups = cloneGroups(groups)
	l.loaded = true
}

func (l *libraryStore) Group(i int) (musing.Group, bool) {
	if i < 0 || i >= len(l.groups) {
		return musing.Group{}, false
	}
	return l.groups[i], true
}

func (l *libraryStore) Loaded() bool {
	return l.loaded
}

func cloneGroups(groups []musing.Group) []musing.Group {
	if len(groups) == 0 {
		return nil
	}
	dup := make([]musing.Group, len(groups))
	copy(dup, groups)
	return dup
}
