package musing

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Request is one operation sent to the server. Decode turns the server's
// reply into a payload; requests whose success reply carries nothing return
// a nil payload.
type Request interface {
	Kind() string
	Decode(raw json.RawMessage) (Payload, error)
}

// OtherKinds are the argument-less request kinds that can travel as
// OtherRequest.
var OtherKinds = []string{
	"pause", "resume", "toggle", "stop", "next", "previous",
	"clearqueue", "gapless", "random", "sequential", "single",
}

// MetadataRequest asks for the tags of the given paths. A nil Tags asks for
// every tag the server knows.
type MetadataRequest struct {
	Paths []string
	Tags  []string
}

func (MetadataRequest) Kind() string { return "metadata" }

func (r MetadataRequest) MarshalJSON() ([]byte, error) {
	body := map[string]any{"kind": r.Kind(), "paths": nonNil(r.Paths)}
	if r.Tags == nil {
		body["all_tags"] = true
	} else {
		body["tags"] = r.Tags
	}
	return json.Marshal(body)
}

func (r MetadataRequest) Decode(raw json.RawMessage) (Payload, error) {
	return decodeMetadata(raw)
}

// SelectRequest asks for the library grouped by GroupBy, with Tags read for
// every song and used to order songs inside a group.
type SelectRequest struct {
	GroupBy []string
	Tags    []string
}

func (SelectRequest) Kind() string { return "select" }

func (r SelectRequest) MarshalJSON() ([]byte, error) {
	type comparator struct {
		Tag string `json:"tag"`
	}
	comparators := make([]comparator, 0, len(r.Tags))
	for _, tag := range r.Tags {
		comparators = append(comparators, comparator{Tag: tag})
	}
	return json.Marshal(struct {
		Kind        string       `json:"kind"`
		Tags        []string     `json:"tags"`
		GroupBy     []string     `json:"group_by"`
		Comparators []comparator `json:"comparators"`
	}{r.Kind(), nonNil(r.Tags), nonNil(r.GroupBy), comparators})
}

func (r SelectRequest) Decode(raw json.RawMessage) (Payload, error) {
	return decodeGroups(raw, r.GroupBy, r.Tags)
}

// StateRequest asks for a state delta.
type StateRequest struct{}

func (StateRequest) Kind() string { return "state" }

func (r StateRequest) MarshalJSON() ([]byte, error) { return kindOnly(r) }

func (StateRequest) Decode(raw json.RawMessage) (Payload, error) {
	delta, err := ParseDelta(raw)
	if err != nil {
		return nil, err
	}
	return StateDelta{Delta: delta}, nil
}

// SeekRequest moves the playhead by Seconds, relative to its position.
type SeekRequest struct {
	Seconds int64
}

func (SeekRequest) Kind() string { return "seek" }

func (r SeekRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Seconds int64  `json:"seconds"`
	}{r.Kind(), r.Seconds})
}

func (SeekRequest) Decode(json.RawMessage) (Payload, error) { return nil, nil }

// SpeedRequest changes the playback speed by Delta percent.
type SpeedRequest struct {
	Delta int16
}

func (SpeedRequest) Kind() string { return "speed" }

func (r SpeedRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Delta int16  `json:"delta"`
	}{r.Kind(), r.Delta})
}

func (SpeedRequest) Decode(json.RawMessage) (Payload, error) { return nil, nil }

// VolumeRequest changes the volume by Delta percent.
type VolumeRequest struct {
	Delta int8
}

func (VolumeRequest) Kind() string { return "volume" }

func (r VolumeRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Delta int8   `json:"delta"`
	}{r.Kind(), r.Delta})
}

func (VolumeRequest) Decode(json.RawMessage) (Payload, error) { return nil, nil }

// AddQueueRequest appends songs to the end of the queue.
type AddQueueRequest struct {
	Paths []string
}

func (AddQueueRequest) Kind() string { return "addqueue" }

func (r AddQueueRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string   `json:"kind"`
		Paths []string `json:"paths"`
	}{r.Kind(), nonNil(r.Paths)})
}

func (AddQueueRequest) Decode(json.RawMessage) (Payload, error) { return nil, nil }

// PlayRequest starts the queue entry with the given id.
type PlayRequest struct {
	ID uint64
}

func (PlayRequest) Kind() string { return "play" }

func (r PlayRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		ID   uint64 `json:"id"`
	}{r.Kind(), r.ID})
}

func (PlayRequest) Decode(json.RawMessage) (Payload, error) { return nil, nil }

// RemoveRequest drops queue entries by id.
type RemoveRequest struct {
	IDs []uint64
}

func (RemoveRequest) Kind() string { return "removequeue" }

func (r RemoveRequest) MarshalJSON() ([]byte, error) {
	ids := r.IDs
	if ids == nil {
		ids = []uint64{}
	}
	return json.Marshal(struct {
		Kind string   `json:"kind"`
		IDs  []uint64 `json:"ids"`
	}{r.Kind(), ids})
}

func (RemoveRequest) Decode(json.RawMessage) (Payload, error) { return nil, nil }

// UpdateRequest rescans the server's music directory.
type UpdateRequest struct{}

func (UpdateRequest) Kind() string { return "update" }

func (r UpdateRequest) MarshalJSON() ([]byte, error) { return kindOnly(r) }

func (UpdateRequest) Decode(raw json.RawMessage) (Payload, error) {
	return decodeUpdate(raw)
}

// OtherRequest is any argument-less request whose reply is a bare
// acknowledgement, such as "pause" or "clearqueue".
type OtherRequest struct {
	Name string
}

// Other builds an OtherRequest.
func Other(name string) OtherRequest {
	return OtherRequest{Name: name}
}

func (r OtherRequest) Kind() string { return r.Name }

func (r OtherRequest) MarshalJSON() ([]byte, error) {
	if !slices.Contains(OtherKinds, r.Name) {
		return nil, fmt.Errorf("unknown request kind %q", r.Name)
	}
	return kindOnly(r)
}

func (OtherRequest) Decode(json.RawMessage) (Payload, error) { return nil, nil }

func kindOnly(r Request) ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
	}{r.Kind()})
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
