package ui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alfazet/amusing/internal/keybind"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []keybind.Key
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, []keybind.Key{keybind.Rune('q')}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, []keybind.Key{keybind.Rune('a'), keybind.Rune('b')}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true}, []keybind.Key{keybind.Rune('b').With(keybind.ModAlt)}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []keybind.Key{keybind.Rune(' ')}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []keybind.Key{keybind.Named(keybind.CodeEnter)}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, []keybind.Key{keybind.Named(keybind.CodeTab)}},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, []keybind.Key{keybind.Named(keybind.CodeEscape)}},
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlW}, []keybind.Key{keybind.Rune('w').With(keybind.ModCtrl)}},
		{"ctrl arrow", tea.KeyMsg{Type: tea.KeyCtrlLeft}, []keybind.Key{keybind.Named(keybind.CodeLeft).With(keybind.ModCtrl)}},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, []keybind.Key{keybind.Named(keybind.CodePageDown)}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []keybind.Key{keybind.Named(keybind.CodeBackspace)}},
		{"unmapped", tea.KeyMsg{Type: tea.KeyF5}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertKey(tt.msg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ConvertKey(%v) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}
