package keybind

import (
	"reflect"
	"strings"
	"testing"
)

func seq(t *testing.T, s string) []Key {
	t.Helper()
	keys, err := ParseSequence(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return keys
}

func TestParseKey(t *testing.T) {
	cases := map[string]Key{
		"j":             Rune('j'),
		"G":             Rune('G'),
		"<SPACE>":       Rune(' '),
		"C-u":           Rune('u').With(ModCtrl),
		"S-<TAB>":       Named(CodeTab).With(ModShift),
		"C-S-x":         Rune('x').With(ModCtrl | ModShift),
		"<PAGE_DOWN>":   Named(CodePageDown),
		"C--":           Rune('-').With(ModCtrl),
		"ż":             Rune('ż'),
		"<RIGHT_ARROW>": Named(CodeRight),
	}
	for in, want := range cases {
		got, err := ParseKey(in)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseKey(%q) = %+v, want %+v", in, got, want)
		}
		if again, _ := ParseKey(got.String()); again != got {
			t.Fatalf("String() of %q does not parse back: %q", in, got.String())
		}
	}
	for _, bad := range []string{"", "gg", "<NOPE>", "C-", "X-a"} {
		if _, err := ParseKey(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestParseSequence(t *testing.T) {
	got := seq(t, "  c   C-r ")
	want := []Key{Rune('c'), Rune('r').With(ModCtrl)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sequence %+v", got)
	}
	if _, err := ParseSequence("   "); err == nil {
		t.Fatalf("expected empty sequence to fail")
	}
	if FormatSequence(got) != "c C-r" {
		t.Fatalf("unexpected format %q", FormatSequence(got))
	}
}

func TestResolverSequences(t *testing.T) {
	trie := NewTrie()
	trie.Add(seq(t, "g g"), ScrollTop)
	var r Resolver

	res := r.Feed(trie, Rune('g'))
	if res.Outcome != Pending || len(r.Pending()) != 1 {
		t.Fatalf("expected g to be pending, got %+v", res)
	}
	res = r.Feed(trie, Rune('g'))
	if res.Outcome != Matched || res.Binding != ScrollTop {
		t.Fatalf("expected scroll_top, got %+v", res)
	}
	if len(r.Pending()) != 0 {
		t.Fatalf("buffer not reset after match")
	}

	r.Feed(trie, Rune('g'))
	res = r.Feed(trie, Rune('x'))
	if res.Outcome != NoMatch {
		t.Fatalf("expected g x to miss, got %+v", res)
	}
	if len(r.Pending()) != 0 {
		t.Fatalf("buffer not reset after miss")
	}
	if !reflect.DeepEqual(res.Keys, []Key{Rune('g'), Rune('x')}) {
		t.Fatalf("miss should report the whole sequence, got %v", res.Keys)
	}
}

func TestLongerSequenceShadowsTerminal(t *testing.T) {
	trie := NewTrie()
	trie.Add(seq(t, "g"), ScrollBottom)
	trie.Add(seq(t, "g g"), ScrollTop)

	if _, ok := trie.Lookup(seq(t, "g")).(Transition); !ok {
		t.Fatalf("g should now be a transition")
	}
	var r Resolver
	if res := r.Feed(trie, Rune('g')); res.Outcome != Pending {
		t.Fatalf("single g must no longer dispatch, got %+v", res)
	}
	if res := r.Feed(trie, Rune('g')); res.Binding != ScrollTop {
		t.Fatalf("expected scroll_top, got %+v", res)
	}
}

func TestSingleKeyReplacesTransition(t *testing.T) {
	trie := NewTrie()
	trie.Add(seq(t, "c g"), ModeGapless)
	trie.Add(seq(t, "c r"), ModeRandom)
	trie.Add(seq(t, "c"), Toggle)

	node, ok := trie.Lookup(seq(t, "c")).(Terminal)
	if !ok || node.Binding != Toggle {
		t.Fatalf("expected terminal toggle, got %#v", trie.Lookup(seq(t, "c")))
	}
	if trie.Lookup(seq(t, "c g")) != nil {
		t.Fatalf("subtree under c should be gone")
	}
}

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()
	cases := map[string]Binding{
		"q":     Quit,
		"g g":   ScrollTop,
		"G":     ScrollBottom,
		"C-u":   ScrollManyUp,
		"d d":   RemoveFromQueue,
		"c r":   ModeRandom,
		"/":     StartSearch,
		"<":     Previous,
		"U":     MusingUpdate,
		"<TAB>": NextScreen,
	}
	for keys, want := range cases {
		node, ok := km.Normal.Lookup(seq(t, keys)).(Terminal)
		if !ok || node.Binding != want {
			t.Fatalf("%q: expected %s, got %#v", keys, want, km.Normal.Lookup(seq(t, keys)))
		}
	}
	if node, ok := km.Search.Lookup(seq(t, "<ESCAPE>")).(Terminal); !ok || node.Binding != EndSearch {
		t.Fatalf("search trie missing end_search")
	}
	if km.Search.Lookup(seq(t, "q")) != nil {
		t.Fatalf("q must be free for typing in search mode")
	}
}

func TestLoadOverrides(t *testing.T) {
	km, err := Load(Overrides{
		"scroll_top": {"t"},
		"quit":       {"Q", "C-q"},
		"end_search": {"C-g"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for keys, want := range map[string]Binding{"t": ScrollTop, "Q": Quit, "C-q": Quit, "g g": ScrollTop} {
		node, ok := km.Normal.Lookup(seq(t, keys)).(Terminal)
		if !ok || node.Binding != want {
			t.Fatalf("%q: expected %s", keys, want)
		}
	}
	if node, ok := km.Search.Lookup(seq(t, "C-g")).(Terminal); !ok || node.Binding != EndSearch {
		t.Fatalf("search override not applied to the search trie")
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	km, err := Load(Overrides{"quit": {"x"}, "scrol_up": {"K"}})
	if err == nil {
		t.Fatalf("expected unknown binding to fail")
	}
	if !strings.Contains(err.Error(), `did you mean "scroll_up"`) {
		t.Fatalf("expected suggestion, got %v", err)
	}
	if km.Normal.Lookup(seq(t, "x")) != nil {
		t.Fatalf("defaults must be used wholesale after an error")
	}

	if _, err := Load(Overrides{"quit": {"<BAD>"}}); err == nil {
		t.Fatalf("expected bad key to fail")
	}
}

func TestParseBindingNames(t *testing.T) {
	for _, name := range Names() {
		b, err := ParseBinding(name)
		if err != nil || b.String() != name {
			t.Fatalf("round trip failed for %q: %v", name, err)
		}
	}
	if _, err := ParseBinding("seek_forwardz"); err == nil || !strings.Contains(err.Error(), "seek_forwards") {
		t.Fatalf("expected edit distance suggestion, got %v", err)
	}
}
