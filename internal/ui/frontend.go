package ui

import (
	"errors"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/alfazet/amusing/internal/event"
	"github.com/alfazet/amusing/internal/theme"
	"github.com/alfazet/amusing/internal/view"
)

const inputBuffer = 256

// ErrClosed is returned by Poll once the program has exited.
var ErrClosed = errors.New("terminal closed")

// Options configure a Frontend. Nil Input and Output use the process
// terminal.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	Styles    *theme.Styles
	AltScreen bool
}

// Frontend owns the Bubble Tea program.
type Frontend struct {
	program *tea.Program
	inputs  chan event.Event
	styles  *theme.Styles
	profile termenv.Profile

	done    chan struct{}
	errOnce sync.Once
	err     error
}

// NewFrontend prepares the program. Nothing is drawn until Run.
func NewFrontend(opts Options) *Frontend {
	inputs := make(chan event.Event, inputBuffer)
	var teaOpts []tea.ProgramOption
	if opts.AltScreen {
		teaOpts = append(teaOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		teaOpts = append(teaOpts, tea.WithInput(opts.Input))
	}
	output := termenv.DefaultOutput()
	if opts.Output != nil {
		teaOpts = append(teaOpts, tea.WithOutput(opts.Output))
		output = termenv.NewOutput(opts.Output)
	}
	styles := opts.Styles
	if styles == nil {
		styles = theme.Default()
	}
	return &Frontend{
		program: tea.NewProgram(NewModel(inputs), teaOpts...),
		inputs:  inputs,
		styles:  styles,
		profile: output.EnvColorProfile(),
		done:    make(chan struct{}),
	}
}

// Profile is the colour profile cover art should be drawn with.
func (f *Frontend) Profile() termenv.Profile {
	return f.profile
}

// Run drives the program until Quit or a terminal error.
func (f *Frontend) Run() error {
	_, err := f.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	f.finish(err)
	return err
}

func (f *Frontend) finish(err error) {
	f.errOnce.Do(func() {
		if err == nil {
			err = ErrClosed
		}
		f.err = err
		close(f.done)
	})
}

// Poll waits at most timeout for one input event.
func (f *Frontend) Poll(timeout time.Duration) (event.Event, bool, error) {
	select {
	case ev := <-f.inputs:
		return ev, true, nil
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-f.inputs:
		return ev, true, nil
	case <-f.done:
		return nil, false, f.err
	case <-timer.C:
		return nil, false, nil
	}
}

// Render draws s on the next program tick.
func (f *Frontend) Render(s view.Snapshot) {
	frame := view.Render(s, f.styles)
	select {
	case <-f.done:
	default:
		f.program.Send(frameMsg(frame))
	}
}

// Quit asks the program to exit.
func (f *Frontend) Quit() {
	select {
	case <-f.done:
	default:
		f.program.Send(quitMsg{})
	}
}
