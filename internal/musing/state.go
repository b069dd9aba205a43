package musing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlaybackState mirrors the server's playback_state strings.
type PlaybackState int

const (
	Stopped PlaybackState = iota
	Playing
	Paused
)

var playbackStateNames = map[string]PlaybackState{
	"stopped": Stopped,
	"playing": Playing,
	"paused":  Paused,
}

func (s PlaybackState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

func (s *PlaybackState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("playback_state: %w", err)
	}
	value, ok := playbackStateNames[name]
	if !ok {
		return fmt.Errorf("playback_state: unknown value %q", name)
	}
	*s = value
	return nil
}

// PlaybackMode mirrors the server's playback_mode strings.
type PlaybackMode int

const (
	Single PlaybackMode = iota
	Sequential
	Random
)

var playbackModeNames = map[string]PlaybackMode{
	"single":     Single,
	"sequential": Sequential,
	"random":     Random,
}

func (m PlaybackMode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Random:
		return "random"
	default:
		return "single"
	}
}

func (m *PlaybackMode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("playback_mode: %w", err)
	}
	value, ok := playbackModeNames[name]
	if !ok {
		return fmt.Errorf("playback_mode: unknown value %q", name)
	}
	*m = value
	return nil
}

// Song is one queue entry. The id is assigned by the server and is what play
// and removequeue refer to.
type Song struct {
	ID   uint64 `json:"id"`
	Path string `json:"path"`
}

func (s *Song) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   *uint64 `json:"id"`
		Path *string `json:"path"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("queue entry: %w", err)
	}
	if raw.ID == nil {
		return fmt.Errorf("queue entry: expected key `id`")
	}
	if raw.Path == nil {
		return fmt.Errorf("queue entry: expected key `path`")
	}
	s.ID, s.Path = *raw.ID, *raw.Path
	return nil
}

// Timer is the elapsed and total time of the current song, in seconds.
type Timer struct {
	Elapsed  uint64
	Duration uint64
}

// UnmarshalJSON accepts partial timers; missing or malformed members read as
// zero.
func (t *Timer) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Timer{}
		return nil
	}
	*t = Timer{Elapsed: uintMember(raw, "elapsed"), Duration: uintMember(raw, "duration")}
	return nil
}

func uintMember(raw map[string]json.RawMessage, key string) uint64 {
	var value uint64
	if data, ok := raw[key]; ok {
		_ = json.Unmarshal(data, &value)
	}
	return value
}

// Field is one member of a Delta. It tells apart a member the server left out
// (Present false) from one it sent as null (Null true).
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// Some returns a present, non-null field.
func Some[T any](value T) Field[T] {
	return Field[T]{Present: true, Value: value}
}

// Null returns a present field carrying an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Null, f.Value = true, zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// Set reports whether the field carries a value.
func (f Field[T]) Set() bool {
	return f.Present && !f.Null
}

// Delta is a partial state update as sent in reply to a state request.
type Delta struct {
	PlaybackState Field[PlaybackState] `json:"playback_state"`
	PlaybackMode  Field[PlaybackMode]  `json:"playback_mode"`
	Volume        Field[int]           `json:"volume"`
	Speed         Field[int]           `json:"speed"`
	Gapless       Field[bool]          `json:"gapless"`
	Queue         Field[[]Song]        `json:"queue"`
	Current       Field[int]           `json:"current"`
	CoverArt      Field[string]        `json:"cover_art"`
	Timer         Field[Timer]         `json:"timer"`
}

// ParseDelta decodes a state reply. Any member that fails to decode fails the
// whole delta.
func ParseDelta(raw json.RawMessage) (Delta, error) {
	var delta Delta
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return delta, fmt.Errorf("state: expected a JSON object")
	}
	if err := json.Unmarshal(trimmed, &delta); err != nil {
		return Delta{}, fmt.Errorf("state: %w", err)
	}
	return delta, nil
}

// State is everything the client knows about the server. It is built once
// and only ever changed through Apply.
type State struct {
	PlaybackState PlaybackState
	PlaybackMode  PlaybackMode
	Volume        int
	Speed         int
	Gapless       bool
	Queue         []Song
	Current       *int
	CoverArt      *string
	Timer         *Timer
}

// Changes records which members of State an Apply call touched.
type Changes uint16

const (
	ChangedPlaybackState Changes = 1 << iota
	ChangedPlaybackMode
	ChangedVolume
	ChangedSpeed
	ChangedGapless
	ChangedQueue
	ChangedCurrent
	ChangedCoverArt
	ChangedTimer
)

// Has reports whether every bit of c is set.
func (c Changes) Has(flag Changes) bool {
	return c&flag == flag
}

// Apply merges d into s field by field. Members absent from d keep their
// value; current, cover_art and timer are cleared by an explicit null, the
// other members ignore null.
func (s *State) Apply(d Delta) Changes {
	var changes Changes
	if d.PlaybackState.Set() {
		s.PlaybackState = d.PlaybackState.Value
		changes |= ChangedPlaybackState
	}
	if d.PlaybackMode.Set() {
		s.PlaybackMode = d.PlaybackMode.Value
		changes |= ChangedPlaybackMode
	}
	if d.Volume.Set() {
		s.Volume = d.Volume.Value
		changes |= ChangedVolume
	}
	if d.Speed.Set() {
		s.Speed = d.Speed.Value
		changes |= ChangedSpeed
	}
	if d.Gapless.Set() {
		s.Gapless = d.Gapless.Value
		changes |= ChangedGapless
	}
	if d.Queue.Set() {
		s.Queue = append([]Song(nil), d.Queue.Value...)
		changes |= ChangedQueue
	}
	if d.Current.Present {
		if d.Current.Null {
			s.Current = nil
		} else {
			current := d.Current.Value
			s.Current = &current
		}
		changes |= ChangedCurrent
	}
	if d.CoverArt.Present {
		if d.CoverArt.Null {
			s.CoverArt = nil
		} else {
			art := d.CoverArt.Value
			s.CoverArt = &art
		}
		changes |= ChangedCoverArt
	}
	if d.Timer.Present {
		if d.Timer.Null {
			s.Timer = nil
		} else {
			timer := d.Timer.Value
			s.Timer = &timer
		}
		changes |= ChangedTimer
	}
	return changes
}

// Stopped reports whether nothing is playing.
func (s *State) Stopped() bool {
	return s.PlaybackState == Stopped
}

// CurrentSong returns the queue entry at Current, if any.
func (s *State) CurrentSong() (Song, bool) {
	if s.Current == nil || *s.Current < 0 || *s.Current >= len(s.Queue) {
		return Song{}, false
	}
	return s.Queue[*s.Current], true
}
