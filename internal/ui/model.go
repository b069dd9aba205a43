package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alfazet/amusing/internal/event"
	"github.com/alfazet/amusing/internal/logging/events"
)

type frameMsg string

type quitMsg struct{}

// Model is the Bubble Tea model. It forwards input to the poller and shows
// the last frame it was sent.
type Model struct {
	frame  string
	inputs chan<- event.Event
}

// NewModel returns a model that queues input on inputs.
func NewModel(inputs chan<- event.Event) *Model {
	return &Model{inputs: inputs}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		for _, key := range ConvertKey(msg) {
			m.push(event.Keypress{Key: key})
		}
	case tea.WindowSizeMsg:
		m.push(event.Resize{Width: msg.Width, Height: msg.Height})
	case frameMsg:
		m.frame = string(msg)
	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) View() string {
	return m.frame
}

// push never blocks the program loop; input is dropped when the consumer
// falls that far behind.
func (m *Model) push(ev event.Event) {
	select {
	case m.inputs <- ev:
	default:
		events.Loop.Dropped(event.Name(ev))
	}
}
