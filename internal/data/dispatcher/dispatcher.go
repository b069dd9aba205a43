package dispatcher

import (
	"errors"

	"github.com/alfazet/amusing/internal/musing"
	"github.com/alfazet/amusing/internal/state"
)

type Result struct {
	Changes         musing.Changes
	StateUpdated    bool
	MetadataUpdated bool
	LibraryUpdated  bool
	// Status is a message for the footer, set by rescans.
	Status string
	// Err is set when the server rejected the request or the reply could
	// not be decoded.
	Err error
}

type Dispatcher struct {
	playback *musing.State
	queue    state.QueueStore
	library  state.LibraryStore
}

func New(playback *musing.State, q state.QueueStore, l state.LibraryStore) *Dispatcher {
	return &Dispatcher{playback: playback, queue: q, library: l}
}

// Handle folds one response into the stores. Metadata replies for a queue
// that has since changed are dropped.
func (d *Dispatcher) Handle(resp musing.Response) Result {
	var res Result
	switch payload := resp.Payload.(type) {
	case musing.Failure:
		res.Err = errors.New(payload.Reason)
	case musing.StateDelta:
		res.Changes = d.playback.Apply(payload.Delta)
		res.StateUpdated = true
		if res.Changes.Has(musing.ChangedQueue) {
			d.queue.SetSongs(d.playback.Queue)
		}
	case musing.MetadataRows:
		req, ok := resp.Request.(musing.MetadataRequest)
		if ok && d.queue.SetRows(req.Paths, payload.Rows) {
			res.MetadataUpdated = true
		}
	case musing.SongGroups:
		d.library.SetGroups(payload.Groups)
		res.LibraryUpdated = true
	case musing.UpdateResult:
		res.Status = payload.Summary()
	}
	return res
}
