package keybind

import (
	"fmt"
	"sort"
)

// Keymap holds the trie used while browsing and the one used while a search
// input has focus.
type Keymap struct {
	Normal *Trie
	Search *Trie
}

// searchOnly bindings are only meaningful while typing a pattern and live in
// the Search trie. EndSearch is also bound in Normal so an idle search can be
// left.
var searchOnly = map[Binding]bool{
	EndSearch:  true,
	IdleSearch: true,
}

var defaultNormal = []struct {
	binding Binding
	keys    []string
}{
	{Quit, []string{"q", "C-c"}},
	{ScrollDown, []string{"j", "<DOWN_ARROW>"}},
	{ScrollUp, []string{"k", "<UP_ARROW>"}},
	{ScrollManyDown, []string{"C-d", "<PAGE_DOWN>"}},
	{ScrollManyUp, []string{"C-u", "<PAGE_UP>"}},
	{ScrollTop, []string{"g g", "<HOME>"}},
	{ScrollBottom, []string{"G", "<END>"}},
	{FocusLeft, []string{"h", "<LEFT_ARROW>"}},
	{FocusRight, []string{"l", "<RIGHT_ARROW>"}},
	{NextScreen, []string{"<TAB>"}},
	{QueueScreen, []string{"1"}},
	{LibraryScreen, []string{"2"}},
	{CoverScreen, []string{"3"}},
	{Play, []string{"<ENTER>"}},
	{Toggle, []string{"p", "<SPACE>"}},
	{Stop, []string{"s"}},
	{Next, []string{">"}},
	{Previous, []string{"<"}},
	{SeekForwards, []string{"f"}},
	{SeekBackwards, []string{"b"}},
	{VolumeUp, []string{"="}},
	{VolumeDown, []string{"-"}},
	{SpeedUp, []string{"]"}},
	{SpeedDown, []string{"["}},
	{AddToQueue, []string{"a"}},
	{RemoveFromQueue, []string{"d d", "<DELETE>"}},
	{ToggleMark, []string{"v"}},
	{ClearQueue, []string{"D"}},
	{ModeGapless, []string{"c g"}},
	{ModeRandom, []string{"c r"}},
	{ModeSequential, []string{"c q"}},
	{ModeSingle, []string{"c s"}},
	{MusingUpdate, []string{"U"}},
	{StartSearch, []string{"/"}},
	{EndSearch, []string{"<ESCAPE>"}},
}

var defaultSearch = []struct {
	binding Binding
	keys    []string
}{
	{EndSearch, []string{"<ESCAPE>"}},
	{IdleSearch, []string{"<ENTER>"}},
	{ScrollUp, []string{"<UP_ARROW>"}},
	{ScrollDown, []string{"<DOWN_ARROW>"}},
	{Quit, []string{"C-c"}},
}

// DefaultKeymap builds a fresh keymap with the built-in bindings.
func DefaultKeymap() Keymap {
	km := Keymap{Normal: NewTrie(), Search: NewTrie()}
	for _, entry := range defaultNormal {
		for _, keys := range entry.keys {
			km.Normal.Add(mustParse(keys), entry.binding)
		}
	}
	for _, entry := range defaultSearch {
		for _, keys := range entry.keys {
			km.Search.Add(mustParse(keys), entry.binding)
		}
	}
	return km
}

func mustParse(s string) []Key {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// Overrides maps binding names to one or more key sequences.
type Overrides map[string][]string

// Apply adds every override on top of km, in binding name order. Any bad
// name or sequence aborts with an error; km may then be partially modified
// and should be discarded.
func (km Keymap) Apply(overrides Overrides) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		binding, err := ParseBinding(name)
		if err != nil {
			return fmt.Errorf("keybind: %w", err)
		}
		tries := []*Trie{km.Normal}
		if searchOnly[binding] {
			tries = []*Trie{km.Search}
		}
		if binding == EndSearch {
			tries = append(tries, km.Normal)
		}
		for _, keys := range overrides[name] {
			seq, err := ParseSequence(keys)
			if err != nil {
				return fmt.Errorf("keybind %s: %w", name, err)
			}
			for _, trie := range tries {
				trie.Add(seq, binding)
			}
		}
	}
	return nil
}

// Load returns the default keymap with overrides applied, or the untouched
// defaults together with the error when any override is invalid.
func Load(overrides Overrides) (Keymap, error) {
	km := DefaultKeymap()
	if len(overrides) == 0 {
		return km, nil
	}
	if err := km.Apply(overrides); err != nil {
		return DefaultKeymap(), err
	}
	return km, nil
}
