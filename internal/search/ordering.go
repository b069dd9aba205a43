package search

import "sync"

// Ordering is the published ranking of a search session: position i of the
// view shows item Ordering[i] of the underlying list. The worker replaces it
// wholesale; readers take the read lock only long enough to copy or index.
type Ordering struct {
	mu   sync.RWMutex
	perm []int
	gen  uint64
}

func identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// reset installs the identity for a list of n items and makes gen the only
// list generation publish accepts.
func (o *Ordering) reset(n int, gen uint64) {
	perm := identity(n)
	o.mu.Lock()
	o.perm = perm
	o.gen = gen
	o.mu.Unlock()
}

// publish swaps in perm if it was computed against the current list.
func (o *Ordering) publish(gen uint64, perm []int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return false
	}
	o.perm = perm
	return true
}

// Len is the number of positions in the ordering.
func (o *Ordering) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.perm)
}

// Snapshot returns a copy of the current permutation.
func (o *Ordering) Snapshot() []int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]int(nil), o.perm...)
}

// RealIndex maps a view position to a list index. Positions outside the
// ordering map to themselves.
func (o *Ordering) RealIndex(view int) int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if view < 0 || view >= len(o.perm) {
		return view
	}
	return o.perm[view]
}
