package backend

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alfazet/amusing/internal/event"
	"github.com/alfazet/amusing/internal/keybind"
)

// scriptedSource replays events and then reports err. Each poll advances the
// fake clock by step.
type scriptedSource struct {
	mu     sync.Mutex
	script []event.Event
	err    error
	clock  *fakeClock
	step   time.Duration
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (s *scriptedSource) Poll(time.Duration) (event.Event, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.advance(s.step)
	if len(s.script) == 0 {
		return nil, false, s.err
	}
	ev := s.script[0]
	s.script = s.script[1:]
	if ev == nil {
		return nil, false, nil
	}
	return ev, true, nil
}

func collect(t *testing.T, p *Poller) []event.Event {
	t.Helper()
	var out []event.Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-p.Events():
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("poller did not finish")
		}
	}
}

func TestPollerEmitsInitialRefreshAndKeys(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	done := errors.New("terminal closed")
	src := &scriptedSource{
		script: []event.Event{
			event.Keypress{Key: keybind.Rune('j')},
			nil,
			event.Resize{Width: 80, Height: 24},
		},
		err:   done,
		clock: clock,
		step:  time.Millisecond,
	}
	p := NewPoller(src, Options{Now: clock.Now, RefreshInterval: time.Hour})

	got := collect(t, p)
	if len(got) != 3 {
		t.Fatalf("expected refresh, key and resize, got %#v", got)
	}
	if _, ok := got[0].(event.Refresh); !ok {
		t.Fatalf("first event must be a refresh, got %#v", got[0])
	}
	if key, ok := got[1].(event.Keypress); !ok || key.Key != keybind.Rune('j') {
		t.Fatalf("unexpected second event %#v", got[1])
	}
	if _, ok := got[2].(event.Resize); !ok {
		t.Fatalf("unexpected third event %#v", got[2])
	}
	if !errors.Is(p.Err(), done) {
		t.Fatalf("expected source error recorded, got %v", p.Err())
	}
}

func TestPollerRefreshCadence(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	script := make([]event.Event, 100)
	src := &scriptedSource{script: script, err: errors.New("eof"), clock: clock, step: 16 * time.Millisecond}
	p := NewPoller(src, Options{Now: clock.Now})

	refreshes := 0
	for _, ev := range collect(t, p) {
		if _, ok := ev.(event.Refresh); ok {
			refreshes++
		}
	}
	// 100 polls of 16ms is 1.6s: one refresh at start plus one per 125ms.
	if refreshes < 12 || refreshes > 14 {
		t.Fatalf("expected about 13 refreshes, got %d", refreshes)
	}
}

func TestPollerStop(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	src := &blockingSource{}
	p := NewPoller(src, Options{Now: clock.Now, RefreshInterval: time.Hour})
	<-p.Events()
	p.Stop()
	p.Wait()
	if _, ok := <-p.Events(); ok {
		t.Fatalf("events should close after Stop")
	}
}

type blockingSource struct{}

func (blockingSource) Poll(timeout time.Duration) (event.Event, bool, error) {
	time.Sleep(timeout)
	return nil, false, nil
}

func TestThrottleDue(t *testing.T) {
	gate := newThrottle(100 * time.Millisecond)
	start := time.Unix(0, 0)
	if !gate.due(start) {
		t.Fatalf("first call should be due")
	}
	if gate.due(start.Add(99 * time.Millisecond)) {
		t.Fatalf("should not be due before the interval")
	}
	if !gate.due(start.Add(100 * time.Millisecond)) {
		t.Fatalf("should be due after the interval")
	}
}
