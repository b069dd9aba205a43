package event

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Next once every producer has finished.
var ErrClosed = errors.New("event stream closed")

// Mux is a many-producer, single-consumer event stream. Each attached
// producer gets a forwarding goroutine, so events from one producer keep
// their order; events from different producers interleave by arrival.
type Mux struct {
	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup

	sealOnce sync.Once
	stopOnce sync.Once
}

// NewMux returns a multiplexer whose output channel holds buffer events.
func NewMux(buffer int) *Mux {
	if buffer < 0 {
		buffer = 0
	}
	return &Mux{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Attach forwards every value from src, wrapped into an Event. When src is
// closed a Disconnected event naming the producer is emitted; cause, if not
// nil, supplies its error.
func Attach[T any](m *Mux, name string, src <-chan T, wrap func(T) Event, cause func() error) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			select {
			case v, ok := <-src:
				if !ok {
					var err error
					if cause != nil {
						err = cause()
					}
					m.emit(Disconnected{Source: name, Err: err})
					return
				}
				if !m.emit(wrap(v)) {
					return
				}
			case <-m.done:
				return
			}
		}
	}()
}

// Forward attaches a producer that already emits Events.
func Forward(m *Mux, name string, src <-chan Event, cause func() error) {
	Attach(m, name, src, func(ev Event) Event { return ev }, cause)
}

func (m *Mux) emit(ev Event) bool {
	select {
	case m.events <- ev:
		return true
	case <-m.done:
		return false
	}
}

// Seal declares that no more producers will be attached. The output channel
// closes after every forwarder has exited.
func (m *Mux) Seal() {
	m.sealOnce.Do(func() {
		go func() {
			m.wg.Wait()
			close(m.events)
		}()
	})
}

// Stop releases forwarders blocked on a consumer that has gone away.
func (m *Mux) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

// Events is the merged stream.
func (m *Mux) Events() <-chan Event {
	return m.events
}

// Next blocks until an event arrives, the stream closes or ctx is done.
func (m *Mux) Next(ctx context.Context) (Event, error) {
	select {
	case ev, ok := <-m.events:
		if !ok {
			return nil, ErrClosed
		}
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
