package musing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Unknown stands in for tag values the server did not report.
const Unknown = "<unknown>"

// Response is one decoded reply together with the request it answers.
type Response struct {
	Request Request
	Payload Payload
}

// Payload is the decoded content of a reply. The concrete types are Failure,
// MetadataRows, SongGroups, StateDelta and UpdateResult.
type Payload interface {
	payload()
}

// Failure is a protocol-level error or a reply that could not be decoded.
type Failure struct {
	Reason string
}

// MetadataRows holds one tag map per requested path, in request order.
type MetadataRows struct {
	Rows []map[string]string
}

// SongGroups is the library as returned by a select request.
type SongGroups struct {
	Groups []Group
}

// StateDelta wraps a decoded state reply.
type StateDelta struct {
	Delta Delta
}

// UpdateResult summarises a database rescan.
type UpdateResult struct {
	Added   uint64
	Removed uint64
}

func (Failure) payload()      {}
func (MetadataRows) payload() {}
func (SongGroups) payload()   {}
func (StateDelta) payload()   {}
func (UpdateResult) payload() {}

func (f Failure) Error() string { return f.Reason }

// Summary is the status line shown after a rescan.
func (u UpdateResult) Summary() string {
	return fmt.Sprintf("update successful, added %s songs, removed %s songs",
		humanize.Comma(int64(u.Added)), humanize.Comma(int64(u.Removed)))
}

// Group is the set of library songs sharing the same group_by values.
type Group struct {
	Key   []string
	Songs []LibrarySong
}

// Label joins the group key for display.
func (g Group) Label() string {
	return strings.Join(g.Key, " - ")
}

// Paths returns the paths of every song in the group, in group order.
func (g Group) Paths() []string {
	paths := make([]string, len(g.Songs))
	for i, song := range g.Songs {
		paths[i] = song.Path
	}
	return paths
}

// LibrarySong is one song inside a Group. Tags only holds values the server
// reported as strings.
type LibrarySong struct {
	Tags map[string]string
	Path string
}

// Title prefers the tracktitle tag and falls back to the path.
func (s LibrarySong) Title() string {
	if title, ok := s.Tags["tracktitle"]; ok && title != "" {
		return title
	}
	return s.Path
}

func decodeMetadata(raw json.RawMessage) (Payload, error) {
	var reply struct {
		Metadata *[]json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil || reply.Metadata == nil {
		return nil, fmt.Errorf("could not fetch metadata")
	}
	rows := make([]map[string]string, 0, len(*reply.Metadata))
	for _, entry := range *reply.Metadata {
		var object map[string]json.RawMessage
		if err := json.Unmarshal(entry, &object); err != nil || object == nil {
			continue
		}
		rows = append(rows, stringMembers(object))
	}
	return MetadataRows{Rows: rows}, nil
}

func stringMembers(object map[string]json.RawMessage) map[string]string {
	row := make(map[string]string, len(object))
	for key, value := range object {
		var text string
		if err := json.Unmarshal(value, &text); err == nil && isJSONString(value) {
			row[key] = text
		}
	}
	return row
}

func isJSONString(value json.RawMessage) bool {
	for _, b := range value {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '"':
			return true
		default:
			return false
		}
	}
	return false
}

func decodeGroups(raw json.RawMessage, groupBy, tags []string) (Payload, error) {
	var reply struct {
		Values *[]json.RawMessage `json:"values"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil || reply.Values == nil {
		return nil, fmt.Errorf("could not select songs")
	}
	index := make(map[string]int)
	var groups []Group
	for _, entry := range *reply.Values {
		var object map[string]json.RawMessage
		if err := json.Unmarshal(entry, &object); err != nil || object == nil {
			continue
		}
		key := make([]string, len(groupBy))
		for i, tag := range groupBy {
			key[i] = Unknown
			if value, ok := object[tag]; ok && isJSONString(value) {
				_ = json.Unmarshal(value, &key[i])
			}
		}
		songs := decodeGroupSongs(object["data"], tags)
		id := strings.Join(key, "\x00")
		if at, ok := index[id]; ok {
			groups[at].Songs = append(groups[at].Songs, songs...)
			continue
		}
		index[id] = len(groups)
		groups = append(groups, Group{Key: key, Songs: songs})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return lessKey(groups[i].Key, groups[j].Key)
	})
	return SongGroups{Groups: groups}, nil
}

func decodeGroupSongs(data json.RawMessage, tags []string) []LibrarySong {
	if data == nil {
		return nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil
	}
	songs := make([]LibrarySong, 0, len(rows))
	for _, row := range rows {
		var values []json.RawMessage
		if err := json.Unmarshal(row, &values); err != nil {
			continue
		}
		song := LibrarySong{Tags: make(map[string]string, len(tags)), Path: Unknown}
		for i, tag := range tags {
			if i >= len(values) {
				break
			}
			var text string
			if isJSONString(values[i]) && json.Unmarshal(values[i], &text) == nil {
				song.Tags[tag] = text
			}
		}
		if len(values) > 0 {
			var path string
			if last := values[len(values)-1]; isJSONString(last) && json.Unmarshal(last, &path) == nil {
				song.Path = path
			}
		}
		songs = append(songs, song)
	}
	return songs
}

func lessKey(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		x, y := strings.ToLower(a[i]), strings.ToLower(b[i])
		if x != y {
			return x < y
		}
	}
	return len(a) < len(b)
}

func decodeUpdate(raw json.RawMessage) (Payload, error) {
	var reply struct {
		Status  string `json:"status"`
		Added   uint64 `json:"added_songs"`
		Removed uint64 `json:"removed_songs"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil || reply.Status != "ok" {
		return nil, fmt.Errorf("could not update database")
	}
	return UpdateResult{Added: reply.Added, Removed: reply.Removed}, nil
}

// FormatTime renders seconds as mm:ss, or h:mm:ss from one hour up.
func FormatTime(seconds uint64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
