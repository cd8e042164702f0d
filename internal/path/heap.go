package path

import "github.com/roguegrid/sim/internal/grid"

// node is per-search working state for one cell. It lives only for the
// duration of a FindPath call.
type node struct {
	pos    grid.Coord
	g      int
	f      int
	dist   float64 // euclidean distance to goal, the last tie-break
	seq    int     // insertion order, so equal nodes pop first-in-first-out
	prev   *node
	index  int // position in the open heap, -1 once popped
	closed bool
}

// openSet is a min-heap of nodes ordered by lowest f, then highest g, then
// lowest euclidean distance to the goal.
type openSet []*node

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	a, b := o[i], o[j]
	if a.f != b.f {
		return a.f < b.f
	}
	// deeper node first
	if a.g != b.g {
		return a.g > b.g
	}
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.seq < b.seq
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}

func (o *openSet) Pop() any {
	old := *o
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*o = old[:last]
	return n
}
