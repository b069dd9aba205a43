package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for tests.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and reports whether the model
// asked the program to quit.
func (h *Harness) Send(msg tea.Msg) bool {
	if h.model == nil {
		return false
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	if cmd == nil {
		return false
	}
	_, quit := cmd().(tea.QuitMsg)
	return quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}
