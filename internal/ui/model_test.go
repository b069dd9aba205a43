package ui

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alfazet/amusing/internal/event"
	"github.com/alfazet/amusing/internal/keybind"
	"github.com/alfazet/amusing/internal/view"
)

func TestModelForwardsInput(t *testing.T) {
	inputs := make(chan event.Event, 4)
	h := NewHarness(NewModel(inputs))

	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 24})

	ev := <-inputs
	if kp, ok := ev.(event.Keypress); !ok || kp.Key != keybind.Rune('j') {
		t.Fatalf("expected keypress j, got %#v", ev)
	}
	ev = <-inputs
	if rs, ok := ev.(event.Resize); !ok || rs.Width != 80 || rs.Height != 24 {
		t.Fatalf("expected resize 80x24, got %#v", ev)
	}
}

func TestModelDropsInputWhenFull(t *testing.T) {
	inputs := make(chan event.Event, 1)
	h := NewHarness(NewModel(inputs))
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if len(inputs) != 1 {
		t.Fatalf("expected one buffered event, got %d", len(inputs))
	}
	if kp := (<-inputs).(event.Keypress); kp.Key != keybind.Rune('a') {
		t.Fatalf("expected the first key to survive, got %v", kp.Key)
	}
}

func TestModelShowsLatestFrame(t *testing.T) {
	h := NewHarness(NewModel(make(chan event.Event, 1)))
	if h.View() != "" {
		t.Fatalf("expected empty view before the first frame")
	}
	h.Send(frameMsg("one"))
	h.Send(frameMsg("two"))
	if got := h.View(); got != "two" {
		t.Fatalf("expected latest frame, got %q", got)
	}
	if !h.Send(quitMsg{}) {
		t.Fatalf("expected quit message to stop the program")
	}
}

func newTestFrontend() *Frontend {
	return NewFrontend(Options{Input: strings.NewReader(""), Output: io.Discard})
}

func TestFrontendPollTimesOut(t *testing.T) {
	f := newTestFrontend()
	start := time.Now()
	ev, ok, err := f.Poll(20 * time.Millisecond)
	if err != nil || ok || ev != nil {
		t.Fatalf("expected empty poll, got %v %v %v", ev, ok, err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatalf("poll returned before its timeout")
	}
}

func TestFrontendPollReturnsQueuedInput(t *testing.T) {
	f := newTestFrontend()
	f.inputs <- event.Resize{Width: 10, Height: 5}
	ev, ok, err := f.Poll(time.Second)
	if err != nil || !ok {
		t.Fatalf("expected event, got ok=%v err=%v", ok, err)
	}
	if _, isResize := ev.(event.Resize); !isResize {
		t.Fatalf("expected resize, got %#v", ev)
	}
}

func TestFrontendPollAfterExit(t *testing.T) {
	f := newTestFrontend()
	f.finish(nil)
	_, _, err := f.Poll(time.Second)
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	// Render and Quit must not block once the program is gone.
	f.Render(view.Snapshot{Width: 10, Height: 5})
	f.Quit()
}
