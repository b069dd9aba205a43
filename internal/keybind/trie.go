// Package keybind maps key sequences to bindings through a prefix trie.
//
// Every node is either a Terminal, which ends a sequence with a binding, or a
// Transition, which waits for further keys. A node is never both: adding a
// longer sequence through a Terminal replaces it, so the shorter binding is
// shadowed.
package keybind

import "github.com/alfazet/amusing/internal/logging/events"

// Node is a Terminal or a Transition.
type Node interface {
	node()
}

// Terminal ends a key sequence.
type Terminal struct {
	Binding Binding
}

// Transition is an inner node keyed by the next key of a sequence.
type Transition map[Key]Node

func (Terminal) node()   {}
func (Transition) node() {}

// Trie is the set of sequences bound in one input mode.
type Trie struct {
	root Transition
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return &Trie{root: Transition{}}
}

// Add binds seq. A single key always becomes a Terminal, replacing whatever
// was there; on longer sequences any Terminal met on the path is replaced by
// a fresh Transition. Empty sequences are ignored.
func (t *Trie) Add(seq []Key, b Binding) {
	add(t.root, seq, b)
}

func add(level Transition, seq []Key, b Binding) {
	switch len(seq) {
	case 0:
		return
	case 1:
		level[seq[0]] = Terminal{Binding: b}
		return
	}
	next, ok := level[seq[0]].(Transition)
	if !ok {
		next = Transition{}
		level[seq[0]] = next
	}
	add(next, seq[1:], b)
}

// Lookup walks seq and returns the node it ends on, or nil when seq leaves
// the trie or runs past a Terminal.
func (t *Trie) Lookup(seq []Key) Node {
	var node Node = t.root
	for _, key := range seq {
		level, ok := node.(Transition)
		if !ok {
			return nil
		}
		if node, ok = level[key]; !ok {
			return nil
		}
	}
	return node
}

// Outcome is what feeding one key to a Resolver produced.
type Outcome int

const (
	// NoMatch: the buffered sequence is not bound; the buffer was cleared.
	NoMatch Outcome = iota
	// Pending: the sequence is a proper prefix of some binding.
	Pending
	// Matched: the sequence ends on a Terminal; the buffer was cleared.
	Matched
)

// Result reports one Feed call. Keys is the buffered sequence including the
// key just fed.
type Result struct {
	Outcome Outcome
	Binding Binding
	Keys    []Key
}

// Resolver buffers keys until they resolve against a trie.
type Resolver struct {
	pending []Key
}

// Feed appends key to the buffer and looks the buffer up in t.
func (r *Resolver) Feed(t *Trie, key Key) Result {
	seq := append(r.pending, key)
	switch node := t.Lookup(seq).(type) {
	case Terminal:
		r.pending = nil
		events.Keys.Dispatch(FormatSequence(seq), node.Binding.String())
		return Result{Outcome: Matched, Binding: node.Binding, Keys: seq}
	case Transition:
		r.pending = seq
		events.Keys.Pending(FormatSequence(seq))
		return Result{Outcome: Pending, Keys: seq}
	default:
		r.pending = nil
		events.Keys.NoMatch(FormatSequence(seq))
		return Result{Outcome: NoMatch, Keys: seq}
	}
}

// Reset drops any buffered keys.
func (r *Resolver) Reset() {
	r.pending = nil
}

// Pending returns the keys waiting for completion.
func (r *Resolver) Pending() []Key {
	return append([]Key(nil), r.pending...)
}
