package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alfazet/amusing/internal/keybind"
)

var namedKeys = map[tea.KeyType]keybind.Key{
	tea.KeyUp:        keybind.Named(keybind.CodeUp),
	tea.KeyDown:      keybind.Named(keybind.CodeDown),
	tea.KeyLeft:      keybind.Named(keybind.CodeLeft),
	tea.KeyRight:     keybind.Named(keybind.CodeRight),
	tea.KeyEnter:     keybind.Named(keybind.CodeEnter),
	tea.KeyEsc:       keybind.Named(keybind.CodeEscape),
	tea.KeyTab:       keybind.Named(keybind.CodeTab),
	tea.KeyBackspace: keybind.Named(keybind.CodeBackspace),
	tea.KeyDelete:    keybind.Named(keybind.CodeDelete),
	tea.KeyHome:      keybind.Named(keybind.CodeHome),
	tea.KeyEnd:       keybind.Named(keybind.CodeEnd),
	tea.KeyPgUp:      keybind.Named(keybind.CodePageUp),
	tea.KeyPgDown:    keybind.Named(keybind.CodePageDown),
	tea.KeySpace:     keybind.Rune(' '),
	tea.KeyShiftTab:  keybind.Named(keybind.CodeTab).With(keybind.ModShift),
	tea.KeyCtrlH:     keybind.Named(keybind.CodeBackspace).With(keybind.ModCtrl),

	tea.KeyCtrlUp:        keybind.Named(keybind.CodeUp).With(keybind.ModCtrl),
	tea.KeyCtrlDown:      keybind.Named(keybind.CodeDown).With(keybind.ModCtrl),
	tea.KeyCtrlLeft:      keybind.Named(keybind.CodeLeft).With(keybind.ModCtrl),
	tea.KeyCtrlRight:     keybind.Named(keybind.CodeRight).With(keybind.ModCtrl),
	tea.KeyShiftUp:       keybind.Named(keybind.CodeUp).With(keybind.ModShift),
	tea.KeyShiftDown:     keybind.Named(keybind.CodeDown).With(keybind.ModShift),
	tea.KeyShiftLeft:     keybind.Named(keybind.CodeLeft).With(keybind.ModShift),
	tea.KeyShiftRight:    keybind.Named(keybind.CodeRight).With(keybind.ModShift),
	tea.KeyCtrlHome:      keybind.Named(keybind.CodeHome).With(keybind.ModCtrl),
	tea.KeyCtrlEnd:       keybind.Named(keybind.CodeEnd).With(keybind.ModCtrl),
	tea.KeyCtrlPgUp:      keybind.Named(keybind.CodePageUp).With(keybind.ModCtrl),
	tea.KeyCtrlPgDown:    keybind.Named(keybind.CodePageDown).With(keybind.ModCtrl),
	tea.KeyCtrlShiftUp:   keybind.Named(keybind.CodeUp).With(keybind.ModCtrl | keybind.ModShift),
	tea.KeyCtrlShiftDown: keybind.Named(keybind.CodeDown).With(keybind.ModCtrl | keybind.ModShift),
}

// ConvertKey translates a Bubble Tea key into keybind keys. Pasted text
// yields one key per rune; keys with no keybind equivalent yield none.
func ConvertKey(msg tea.KeyMsg) []keybind.Key {
	var mods keybind.Mod
	if msg.Alt {
		mods = keybind.ModAlt
	}
	if msg.Type == tea.KeyRunes {
		keys := make([]keybind.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, keybind.Rune(r).With(mods))
		}
		return keys
	}
	if key, ok := namedKeys[msg.Type]; ok {
		return []keybind.Key{key.With(mods)}
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		r := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return []keybind.Key{keybind.Rune(r).With(keybind.ModCtrl | mods)}
	}
	return nil
}
