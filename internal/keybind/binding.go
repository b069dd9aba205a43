package keybind

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Binding is an action a key sequence can trigger.
type Binding int

const (
	Quit Binding = iota
	ScrollUp
	ScrollDown
	ScrollManyUp
	ScrollManyDown
	ScrollTop
	ScrollBottom
	FocusLeft
	FocusRight
	NextScreen
	QueueScreen
	LibraryScreen
	CoverScreen
	Play
	Toggle
	Pause
	Resume
	Stop
	Next
	Previous
	SeekForwards
	SeekBackwards
	VolumeUp
	VolumeDown
	SpeedUp
	SpeedDown
	AddToQueue
	RemoveFromQueue
	ToggleMark
	ClearQueue
	ModeGapless
	ModeRandom
	ModeSequential
	ModeSingle
	MusingUpdate
	StartSearch
	EndSearch
	IdleSearch
	bindingCount
)

var bindingNames = [bindingCount]string{
	Quit:            "quit",
	ScrollUp:        "scroll_up",
	ScrollDown:      "scroll_down",
	ScrollManyUp:    "scroll_many_up",
	ScrollManyDown:  "scroll_many_down",
	ScrollTop:       "scroll_top",
	ScrollBottom:    "scroll_bottom",
	FocusLeft:       "focus_left",
	FocusRight:      "focus_right",
	NextScreen:      "next_screen",
	QueueScreen:     "queue_screen",
	LibraryScreen:   "library_screen",
	CoverScreen:     "cover_screen",
	Play:            "play",
	Toggle:          "toggle",
	Pause:           "pause",
	Resume:          "resume",
	Stop:            "stop",
	Next:            "next",
	Previous:        "previous",
	SeekForwards:    "seek_forwards",
	SeekBackwards:   "seek_backwards",
	VolumeUp:        "volume_up",
	VolumeDown:      "volume_down",
	SpeedUp:         "speed_up",
	SpeedDown:       "speed_down",
	AddToQueue:      "add_to_queue",
	RemoveFromQueue: "remove_from_queue",
	ToggleMark:      "toggle_mark",
	ClearQueue:      "clear_queue",
	ModeGapless:     "mode_gapless",
	ModeRandom:      "mode_random",
	ModeSequential:  "mode_sequential",
	ModeSingle:      "mode_single",
	MusingUpdate:    "musing_update",
	StartSearch:     "start_search",
	EndSearch:       "end_search",
	IdleSearch:      "idle_search",
}

var bindingsByName = func() map[string]Binding {
	byName := make(map[string]Binding, bindingCount)
	for b, name := range bindingNames {
		byName[name] = Binding(b)
	}
	return byName
}()

func (b Binding) String() string {
	if b < 0 || b >= bindingCount {
		return fmt.Sprintf("binding(%d)", int(b))
	}
	return bindingNames[b]
}

// Names lists every binding name in declaration order.
func Names() []string {
	return append([]string(nil), bindingNames[:]...)
}

// ParseBinding resolves a snake_case binding name.
func ParseBinding(name string) (Binding, error) {
	if b, ok := bindingsByName[name]; ok {
		return b, nil
	}
	if suggestion := suggest(name); suggestion != "" {
		return 0, fmt.Errorf("unknown binding %q (did you mean %q?)", name, suggestion)
	}
	return 0, fmt.Errorf("unknown binding %q", name)
}

// suggest picks the closest known name: a fuzzy subsequence match when there
// is one, edit distance otherwise.
func suggest(name string) string {
	if name == "" {
		return ""
	}
	names := bindingNames[:]
	if ranks := fuzzy.RankFindNormalizedFold(name, names); len(ranks) > 0 {
		best := ranks[0]
		for _, rank := range ranks[1:] {
			if rank.Distance < best.Distance ||
				(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
				best = rank
			}
		}
		return best.Target
	}
	best, bestDistance := "", len(name)/2+1
	for _, candidate := range names {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}
