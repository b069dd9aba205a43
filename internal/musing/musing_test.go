package musing

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustDelta(t *testing.T, raw string) Delta {
	t.Helper()
	delta, err := ParseDelta(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("parse %s: %v", raw, err)
	}
	return delta
}

func TestApplyCurrentIsFieldLocal(t *testing.T) {
	three := 3
	state := State{Current: &three, Volume: 40}

	state.Apply(mustDelta(t, `{}`))
	if state.Current == nil || *state.Current != 3 {
		t.Fatalf("empty delta changed current: %v", state.Current)
	}

	state.Apply(mustDelta(t, `{"current": null}`))
	if state.Current != nil {
		t.Fatalf("expected current cleared, got %d", *state.Current)
	}

	state.Apply(mustDelta(t, `{"current": 5}`))
	if state.Current == nil || *state.Current != 5 {
		t.Fatalf("expected current 5, got %v", state.Current)
	}
	if state.Volume != 40 {
		t.Fatalf("volume changed to %d", state.Volume)
	}
}

func TestApplyVolumeOnly(t *testing.T) {
	art := "aGVsbG8="
	current := 1
	state := State{
		PlaybackState: Playing,
		PlaybackMode:  Random,
		Volume:        10,
		Speed:         100,
		Gapless:       true,
		Queue:         []Song{{ID: 1, Path: "a.flac"}, {ID: 2, Path: "b.flac"}},
		Current:       &current,
		CoverArt:      &art,
		Timer:         &Timer{Elapsed: 3, Duration: 9},
	}
	before := state
	before.Queue = append([]Song(nil), state.Queue...)

	changes := state.Apply(mustDelta(t, `{"volume": 7}`))
	if changes != ChangedVolume {
		t.Fatalf("expected only volume change, got %b", changes)
	}
	before.Volume = 7
	if !reflect.DeepEqual(before, state) {
		t.Fatalf("unexpected state after volume delta:\nwant %+v\ngot  %+v", before, state)
	}
}

func TestApplyCoverArtAndTimer(t *testing.T) {
	var state State
	changes := state.Apply(mustDelta(t, `{"cover_art": "Zm9v", "timer": {"elapsed": 95, "duration": 240}}`))
	if !changes.Has(ChangedCoverArt | ChangedTimer) {
		t.Fatalf("expected cover and timer changes, got %b", changes)
	}
	if state.CoverArt == nil || *state.CoverArt != "Zm9v" {
		t.Fatalf("unexpected cover art %v", state.CoverArt)
	}
	if state.Timer == nil || *state.Timer != (Timer{Elapsed: 95, Duration: 240}) {
		t.Fatalf("unexpected timer %+v", state.Timer)
	}

	state.Apply(mustDelta(t, `{"cover_art": null, "timer": {"elapsed": 4}}`))
	if state.CoverArt != nil {
		t.Fatalf("expected cover art cleared")
	}
	if *state.Timer != (Timer{Elapsed: 4}) {
		t.Fatalf("partial timer should default missing members, got %+v", state.Timer)
	}
}

func TestApplyReplacesQueue(t *testing.T) {
	state := State{Queue: []Song{{ID: 9, Path: "old"}}}
	delta := mustDelta(t, `{"queue": [{"id": 1, "path": "a"}, {"id": 2, "path": "b"}], "playback_state": "paused", "playback_mode": "sequential", "gapless": true}`)
	changes := state.Apply(delta)
	if !changes.Has(ChangedQueue) {
		t.Fatalf("queue change not reported")
	}
	want := []Song{{ID: 1, Path: "a"}, {ID: 2, Path: "b"}}
	if !reflect.DeepEqual(state.Queue, want) {
		t.Fatalf("unexpected queue %+v", state.Queue)
	}
	if state.PlaybackState != Paused || state.PlaybackMode != Sequential || !state.Gapless {
		t.Fatalf("unexpected playback fields %+v", state)
	}
}

func TestParseDeltaRejectsUnknownEnum(t *testing.T) {
	if _, err := ParseDelta(json.RawMessage(`{"playback_state": "rewinding"}`)); err == nil {
		t.Fatalf("expected unknown playback state to fail")
	}
	if _, err := ParseDelta(json.RawMessage(`{"playback_mode": "shuffle"}`)); err == nil {
		t.Fatalf("expected unknown playback mode to fail")
	}
	if _, err := ParseDelta(json.RawMessage(`[1, 2]`)); err == nil {
		t.Fatalf("expected non-object to fail")
	}
	if _, err := ParseDelta(json.RawMessage(`{"queue": [{"id": 1}]}`)); err == nil {
		t.Fatalf("expected queue entry without path to fail")
	}
}

func TestFieldDistinguishesAbsentAndNull(t *testing.T) {
	delta := mustDelta(t, `{"current": null}`)
	if !delta.Current.Present || !delta.Current.Null {
		t.Fatalf("null current decoded as %+v", delta.Current)
	}
	if delta.CoverArt.Present {
		t.Fatalf("absent cover art decoded as present")
	}
}

func TestRequestEncoding(t *testing.T) {
	cases := []struct {
		req  Request
		want string
	}{
		{SeekRequest{Seconds: -5}, `{"kind":"seek","seconds":-5}`},
		{StateRequest{}, `{"kind":"state"}`},
		{VolumeRequest{Delta: 5}, `{"kind":"volume","delta":5}`},
		{SpeedRequest{Delta: -10}, `{"kind":"speed","delta":-10}`},
		{PlayRequest{ID: 12}, `{"kind":"play","id":12}`},
		{RemoveRequest{IDs: []uint64{3, 4}}, `{"kind":"removequeue","ids":[3,4]}`},
		{AddQueueRequest{Paths: []string{"x.mp3"}}, `{"kind":"addqueue","paths":["x.mp3"]}`},
		{UpdateRequest{}, `{"kind":"update"}`},
		{Other("clearqueue"), `{"kind":"clearqueue"}`},
		{MetadataRequest{Paths: []string{"a"}}, `{"all_tags":true,"kind":"metadata","paths":["a"]}`},
		{MetadataRequest{Paths: []string{"a"}, Tags: []string{"album"}}, `{"kind":"metadata","paths":["a"],"tags":["album"]}`},
		{SelectRequest{GroupBy: []string{"album"}, Tags: []string{"tracktitle"}},
			`{"kind":"select","tags":["tracktitle"],"group_by":["album"],"comparators":[{"tag":"tracktitle"}]}`},
	}
	for _, tc := range cases {
		got, err := json.Marshal(tc.req)
		if err != nil {
			t.Fatalf("%s: %v", tc.req.Kind(), err)
		}
		if string(got) != tc.want {
			t.Fatalf("%s: want %s, got %s", tc.req.Kind(), tc.want, got)
		}
	}
}

func TestOtherRejectsUnknownKinds(t *testing.T) {
	for _, name := range []string{"", "seek", "rewind"} {
		if _, err := json.Marshal(Other(name)); err == nil {
			t.Fatalf("expected %q to fail to encode", name)
		}
	}
	for _, name := range OtherKinds {
		if _, err := json.Marshal(Other(name)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestDecodeMetadataDropsNonStrings(t *testing.T) {
	payload, err := MetadataRequest{Paths: []string{"a", "b"}}.Decode(json.RawMessage(
		`{"metadata":[{"tracktitle":"Song","tracknumber":3,"album":null},{"artist":"X"}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rows := payload.(MetadataRows).Rows
	want := []map[string]string{{"tracktitle": "Song"}, {"artist": "X"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows %+v", rows)
	}

	if _, err := (MetadataRequest{}).Decode(json.RawMessage(`{"status":"ok"}`)); err == nil {
		t.Fatalf("expected missing metadata to fail")
	}
}

func TestDecodeGroupsMergesAndDefaults(t *testing.T) {
	req := SelectRequest{GroupBy: []string{"albumartist", "album"}, Tags: []string{"tracktitle"}}
	raw := `{"values":[
		{"albumartist":"B","album":"Two","data":[["t1","b/1.flac"]]},
		{"album":"Loose","data":[[null,"x.flac"]]},
		{"albumartist":"B","album":"Two","data":[["t2","b/2.flac"]]}
	]}`
	payload, err := req.Decode(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	groups := payload.(SongGroups).Groups
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if !reflect.DeepEqual(groups[0].Key, []string{"<unknown>", "Loose"}) {
		t.Fatalf("unexpected first key %v", groups[0].Key)
	}
	if groups[0].Songs[0].Title() != "x.flac" {
		t.Fatalf("expected path fallback, got %q", groups[0].Songs[0].Title())
	}
	if !reflect.DeepEqual(groups[1].Paths(), []string{"b/1.flac", "b/2.flac"}) {
		t.Fatalf("groups with equal keys not merged: %v", groups[1].Paths())
	}
	if groups[1].Songs[1].Title() != "t2" {
		t.Fatalf("unexpected title %q", groups[1].Songs[1].Title())
	}
}

func TestDecodeUpdateSummary(t *testing.T) {
	payload, err := UpdateRequest{}.Decode(json.RawMessage(`{"status":"ok","added_songs":1200,"removed_songs":3}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := payload.(UpdateResult).Summary()
	if got != "update successful, added 1,200 songs, removed 3 songs" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestAckOnlyRequestsHaveNoPayload(t *testing.T) {
	for _, req := range []Request{SeekRequest{}, PlayRequest{}, Other("pause"), RemoveRequest{}} {
		payload, err := req.Decode(json.RawMessage(`{"status":"ok"}`))
		if err != nil || payload != nil {
			t.Fatalf("%s: expected no payload, got %v, %v", req.Kind(), payload, err)
		}
	}
}

func TestFormatTime(t *testing.T) {
	cases := map[uint64]string{0: "00:00", 95: "01:35", 240: "04:00", 3600: "1:00:00", 3725: "1:02:05"}
	for seconds, want := range cases {
		if got := FormatTime(seconds); got != want {
			t.Fatalf("FormatTime(%d) = %q, want %q", seconds, got, want)
		}
	}
}
