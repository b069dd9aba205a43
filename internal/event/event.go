// Package event merges the application's producers into the single stream
// the main loop consumes.
package event

import (
	"github.com/alfazet/amusing/internal/coverart"
	"github.com/alfazet/amusing/internal/keybind"
	"github.com/alfazet/amusing/internal/musing"
)

// Event is one of Keypress, Refresh, Resize, CoverArtResize, Response or
// Disconnected.
type Event interface {
	event()
}

// Keypress is one key read from the terminal.
type Keypress struct {
	Key keybind.Key
}

// Refresh is the periodic tick that pulls fresh server state.
type Refresh struct{}

// Resize reports the terminal size in cells.
type Resize struct {
	Width  int
	Height int
}

// CoverArtResize carries a finished cover-art render.
type CoverArtResize struct {
	Result coverart.Result
}

// Response carries one decoded server reply.
type Response struct {
	Response musing.Response
}

// Disconnected is emitted once when a producer's channel closes. Err is the
// producer's reason, if it reported one.
type Disconnected struct {
	Source string
	Err    error
}

func (Keypress) event()       {}
func (Refresh) event()        {}
func (Resize) event()         {}
func (CoverArtResize) event() {}
func (Response) event()       {}
func (Disconnected) event()   {}

// Name is a short label for traces.
func Name(ev Event) string {
	switch ev.(type) {
	case Keypress:
		return "keypress"
	case Refresh:
		return "refresh"
	case Resize:
		return "resize"
	case CoverArtResize:
		return "cover-art"
	case Response:
		return "response"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}
