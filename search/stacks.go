package search

import "github.com/vlsicore/mzrouter/patharena"

// stack is a LIFO of pending path IDs, one of the four focus stacks
// (walk, downhill, straight, bloom). Paths landing on a stack skip
// the windowed heap machinery entirely: a stack holds work the driver
// already knows is worth doing next.
type stack []patharena.PathID

func (s *stack) push(id patharena.PathID) { *s = append(*s, id) }

func (s *stack) pop() (patharena.PathID, bool) {
	n := len(*s)
	if n == 0 {
		return patharena.NoPath, false
	}
	id := (*s)[n-1]
	*s = (*s)[:n-1]
	return id, true
}

func (s stack) empty() bool { return len(s) == 0 }
