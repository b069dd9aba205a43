package keybind

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Code identifies a key. Printable keys use CodeRune together with Key.Rune.
type Code int

const (
	CodeRune Code = iota
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeEnter
	CodeEscape
	CodeTab
	CodeBackspace
	CodeDelete
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
)

// Mod is a set of modifier keys.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModShift
	ModAlt
)

// Key is one key press. It is comparable and used as a trie edge.
type Key struct {
	Code Code
	Rune rune
	Mods Mod
}

// Rune builds an unmodified printable key.
func Rune(r rune) Key {
	return Key{Code: CodeRune, Rune: r}
}

// Named builds an unmodified non-printable key.
func Named(code Code) Key {
	return Key{Code: code}
}

// With returns k with mods added.
func (k Key) With(mods Mod) Key {
	k.Mods |= mods
	return k
}

var namedCodes = map[string]Code{
	"<UP_ARROW>":    CodeUp,
	"<DOWN_ARROW>":  CodeDown,
	"<LEFT_ARROW>":  CodeLeft,
	"<RIGHT_ARROW>": CodeRight,
	"<ENTER>":       CodeEnter,
	"<ESCAPE>":      CodeEscape,
	"<TAB>":         CodeTab,
	"<BACKSPACE>":   CodeBackspace,
	"<DELETE>":      CodeDelete,
	"<HOME>":        CodeHome,
	"<END>":         CodeEnd,
	"<PAGE_UP>":     CodePageUp,
	"<PAGE_DOWN>":   CodePageDown,
}

var codeNames = func() map[Code]string {
	names := make(map[Code]string, len(namedCodes))
	for name, code := range namedCodes {
		names[code] = name
	}
	return names
}()

// modifier prefixes, longest first so C-S- wins over C-.
var modPrefixes = []struct {
	prefix string
	mods   Mod
}{
	{"C-S-", ModCtrl | ModShift},
	{"C-", ModCtrl},
	{"S-", ModShift},
	{"A-", ModAlt},
}

func (k Key) String() string {
	var b strings.Builder
	for _, p := range modPrefixes {
		if k.Mods == p.mods {
			b.WriteString(p.prefix)
			break
		}
	}
	if k.Code == CodeRune {
		if k.Rune == ' ' {
			b.WriteString("<SPACE>")
		} else {
			b.WriteRune(k.Rune)
		}
		return b.String()
	}
	if name, ok := codeNames[k.Code]; ok {
		b.WriteString(name)
	} else {
		fmt.Fprintf(&b, "<%d>", int(k.Code))
	}
	return b.String()
}

func parseCode(s string) (Key, bool) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return Rune(r), true
	}
	if s == "<SPACE>" {
		return Rune(' '), true
	}
	code, ok := namedCodes[s]
	if !ok {
		return Key{}, false
	}
	return Named(code), true
}

// ParseKey parses one key such as "j", "C-u", "S-<TAB>" or "<PAGE_DOWN>".
func ParseKey(s string) (Key, error) {
	for _, p := range modPrefixes {
		if rest, ok := strings.CutPrefix(s, p.prefix); ok {
			if key, ok := parseCode(rest); ok {
				return key.With(p.mods), nil
			}
		}
	}
	if key, ok := parseCode(s); ok {
		return key, nil
	}
	return Key{}, fmt.Errorf("could not parse %q as a key", s)
}

// ParseSequence parses whitespace separated keys, e.g. "g g" or "c C-r".
func ParseSequence(s string) ([]Key, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("could not parse %q as a keybinding: empty sequence", s)
	}
	keys := make([]Key, 0, len(parts))
	for _, part := range parts {
		key, err := ParseKey(part)
		if err != nil {
			return nil, fmt.Errorf("could not parse %q as a keybinding: %w", s, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// FormatSequence is the inverse of ParseSequence.
func FormatSequence(keys []Key) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = key.String()
	}
	return strings.Join(parts, " ")
}
