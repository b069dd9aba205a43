package search

import (
	"runtime"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// parallelThreshold is the list size from which scoring is split across
// goroutines.
const parallelThreshold = 2048

var initAlgo sync.Once

// scorer ranks one list against successive patterns. It is owned by a single
// worker goroutine.
type scorer struct {
	gen   uint64
	chars []util.Chars
	slabs []*util.Slab
}

func newScorer() *scorer {
	initAlgo.Do(func() { algo.Init("default") })
	return &scorer{}
}

// Transliterate folds pattern to the form the matcher expects: accents
// stripped, lower case, latin look-alikes normalized.
func Transliterate(pattern string) []rune {
	chain := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, pattern)
	if err != nil {
		folded = pattern
	}
	return algo.NormalizeRunes([]rune(strings.ToLower(folded)))
}

func (s *scorer) load(gen uint64, list []string) {
	if s.chars != nil && s.gen == gen {
		return
	}
	s.gen = gen
	s.chars = make([]util.Chars, len(list))
	for i, item := range list {
		s.chars[i] = util.ToChars([]byte(item))
	}
}

func (s *scorer) slab(i int) *util.Slab {
	for len(s.slabs) <= i {
		s.slabs = append(s.slabs, util.MakeSlab(100*1024, 2048))
	}
	return s.slabs[i]
}

// rank returns indices ordered by descending score, ties broken by ascending
// index. The result is always a permutation of 0..len(list).
func (s *scorer) rank(gen uint64, list []string, pattern string) []int {
	s.load(gen, list)
	perm := identity(len(s.chars))
	needle := Transliterate(pattern)
	if len(needle) == 0 || len(perm) == 0 {
		return perm
	}

	scores := make([]int, len(s.chars))
	if len(s.chars) < parallelThreshold {
		s.scoreRange(scores, 0, len(s.chars), needle, s.slab(0))
	} else {
		s.scoreParallel(scores, needle)
	}

	slices.SortStableFunc(perm, func(a, b int) int {
		return scores[b] - scores[a]
	})
	return perm
}

func (s *scorer) scoreRange(scores []int, from, to int, needle []rune, slab *util.Slab) {
	for i := from; i < to; i++ {
		result, _ := algo.FuzzyMatchV2(false, true, true, &s.chars[i], needle, false, slab)
		if result.Start < 0 {
			scores[i] = 0
			continue
		}
		scores[i] = result.Score
	}
}

func (s *scorer) scoreParallel(scores []int, needle []rune) {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	chunk := (len(s.chars) + workers - 1) / workers
	for i := 0; i < workers; i++ {
		s.slab(i)
	}
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		from := w * chunk
		to := min(from+chunk, len(s.chars))
		if from >= to {
			break
		}
		slab := s.slabs[w]
		g.Go(func() error {
			s.scoreRange(scores, from, to, needle, slab)
			return nil
		})
	}
	_ = g.Wait()
}
