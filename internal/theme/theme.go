package theme

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	CurrentTitle      *lipgloss.Style
	CurrentArtist     *lipgloss.Style
	CurrentAlbum      *lipgloss.Style
	Header            *lipgloss.Style
	Item              *lipgloss.Style
	SelectedItem      *lipgloss.Style
	FocusedItem       *lipgloss.Style
	PlayingItem       *lipgloss.Style
	MarkedItem        *lipgloss.Style
	PaneTitle         *lipgloss.Style
	Border            *lipgloss.Style
	ActiveBorder      *lipgloss.Style
	Info              *lipgloss.Style
	Error             *lipgloss.Style
	ProgressDone      *lipgloss.Style
	ProgressRemaining *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
}

var defaultStyles = Styles{
	CurrentTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	),
	CurrentArtist: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	),
	CurrentAlbum: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Reverse(true),
	),
	FocusedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Reverse(true),
	),
	PlayingItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	),
	MarkedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	),
	PaneTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	),
	Border: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	ActiveBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	ProgressDone: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	),
	ProgressRemaining: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// overridable maps config names to the style whose foreground they set.
func (s *Styles) overridable() map[string]**lipgloss.Style {
	return map[string]**lipgloss.Style{
		"current_title":     &s.CurrentTitle,
		"current_artist":    &s.CurrentArtist,
		"current_album":     &s.CurrentAlbum,
		"selection":         &s.PlayingItem,
		"progress_bar_done": &s.ProgressDone,
		"progress_bar_rem":  &s.ProgressRemaining,
		"pane_title":        &s.PaneTitle,
		"status":            &s.Info,
		"error":             &s.Error,
	}
}

// Names lists the style names accepted by WithColors.
func Names() []string {
	var probe Styles
	names := make([]string, 0, 9)
	for name := range probe.overridable() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithColors returns a copy of the default styles with the foreground of each
// named style replaced. Colors are ANSI numbers or hex strings.
func WithColors(colors map[string]string) (*Styles, error) {
	styles := defaultStyles
	if len(colors) == 0 {
		return &styles, nil
	}
	targets := styles.overridable()
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		target, ok := targets[name]
		if !ok {
			return Default(), fmt.Errorf("theme: unknown style %q", name)
		}
		value := colors[name]
		if value == "" {
			return Default(), fmt.Errorf("theme: empty color for %q", name)
		}
		*target = ptr((*target).Foreground(lipgloss.Color(value)))
	}
	return &styles, nil
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
