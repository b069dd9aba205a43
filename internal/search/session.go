// Package search ranks a list of strings against an incrementally edited
// pattern. Each active session owns one worker goroutine that recomputes the
// ranking whenever the pattern or the list changes and publishes it into a
// shared Ordering. Closing the session's channel is the only way to stop the
// worker.
package search

import (
	"slices"
	"time"

	"github.com/alfazet/amusing/internal/logging/events"
)

// Mode is the lifecycle state of a session.
type Mode int

const (
	// Off: no worker, the view shows the list in its own order.
	Off Mode = iota
	// On: the worker runs and the input accepts edits.
	On
	// Idle: the worker runs and follows list changes, the input is frozen.
	Idle
)

func (m Mode) String() string {
	switch m {
	case On:
		return "on"
	case Idle:
		return "idle"
	default:
		return "off"
	}
}

type message struct {
	gen     uint64
	list    []string
	pattern string
}

// Session is one searchable list. It is owned by a single goroutine; only
// its Ordering is shared with the worker.
type Session struct {
	name     string
	mode     Mode
	list     []string
	gen      uint64
	input    Input
	in       chan message
	ordering *Ordering
	done     chan struct{}
}

// NewSession returns an Off session. name only shows up in traces.
func NewSession(name string) *Session {
	return &Session{name: name, input: Input{list: name}}
}

// Mode reports the session state.
func (s *Session) Mode() Mode {
	return s.mode
}

// Active reports whether a worker is running.
func (s *Session) Active() bool {
	return s.mode != Off
}

// Input exposes the pattern buffer. Edits made through it take effect on the
// next PatternChanged call.
func (s *Session) Input() *Input {
	return &s.input
}

// Pattern returns the current pattern text.
func (s *Session) Pattern() string {
	return s.input.Value()
}

// Start moves the session to On. From Off it spawns a worker over the
// current list with an empty pattern; from Idle it unfreezes the input.
// Starting a search over an empty list does nothing.
func (s *Session) Start() bool {
	switch s.mode {
	case On:
		return false
	case Idle:
		s.transition(On)
		return true
	}
	if len(s.list) == 0 {
		return false
	}
	s.input = Input{list: s.name}
	s.ordering = &Ordering{}
	s.ordering.reset(len(s.list), s.gen)
	s.in = make(chan message, 1)
	s.done = make(chan struct{})
	go work(s.in, s.ordering, s.done)
	s.transition(On)
	s.send()
	return true
}

// Idle freezes the pattern. The ordering keeps following list updates.
func (s *Session) Idle() bool {
	if s.mode != On {
		return false
	}
	s.transition(Idle)
	return true
}

// Stop ends the worker and drops the ordering.
func (s *Session) Stop() bool {
	if s.mode == Off {
		return false
	}
	close(s.in)
	s.in = nil
	s.ordering = nil
	s.input = Input{list: s.name}
	s.transition(Off)
	return true
}

// Wait blocks until the last worker started by this session has exited.
// Tests use it to check Stop really ends the goroutine.
func (s *Session) Wait() {
	if s.done != nil {
		<-s.done
	}
}

// SetList replaces the underlying list. While a worker runs the ordering is
// reset to the identity over the new list at once, so indices read before the
// worker catches up still refer to the new list. An identical list keeps the
// current ordering.
func (s *Session) SetList(list []string) {
	if slices.Equal(list, s.list) {
		s.list = list
		return
	}
	s.list = list
	s.gen++
	if s.mode == Off {
		return
	}
	s.ordering.reset(len(list), s.gen)
	s.send()
}

// PatternChanged hands the edited pattern to the worker. It is ignored unless
// the session is On.
func (s *Session) PatternChanged() bool {
	if s.mode != On {
		return false
	}
	s.send()
	return true
}

// Len is the number of items in the underlying list.
func (s *Session) Len() int {
	return len(s.list)
}

// RealIndex maps a position in the view to an index in the list.
func (s *Session) RealIndex(view int) int {
	if s.ordering == nil {
		return view
	}
	return s.ordering.RealIndex(view)
}

// Ordering returns a copy of the permutation the view should use, or the
// identity when the session is Off.
func (s *Session) Ordering() []int {
	if s.ordering == nil {
		return identity(len(s.list))
	}
	return s.ordering.Snapshot()
}

func (s *Session) transition(to Mode) {
	events.Search.State(s.name, s.mode.String(), to.String())
	s.mode = to
}

// send hands the latest list and pattern to the worker without blocking. An
// unread message still in the buffer is superseded.
func (s *Session) send() {
	msg := message{gen: s.gen, list: s.list, pattern: s.input.Value()}
	for {
		select {
		case s.in <- msg:
			return
		default:
		}
		select {
		case <-s.in:
		default:
		}
	}
}

func work(in <-chan message, ordering *Ordering, done chan<- struct{}) {
	defer close(done)
	sc := newScorer()
	for msg := range in {
		started := time.Now()
		perm := sc.rank(msg.gen, msg.list, msg.pattern)
		if ordering.publish(msg.gen, perm) {
			events.Search.Ordered(len(perm), msg.pattern, time.Since(started))
		}
	}
}
