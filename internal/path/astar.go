// Package path finds shortest 4-connected walkable routes on a tile grid.
package path

import (
	"container/heap"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/metrics"
)

// DefaultMaxExpansions bounds a single search. Hitting it means a bug, not
// an unreachable goal: unreachable goals drain the open set long before.
const DefaultMaxExpansions = 10000

// ErrSearchExhausted is the panic value (wrapped) raised by a strict Finder
// when a search exceeds its expansion ceiling.
var ErrSearchExhausted = errors.New("path: expansion ceiling exceeded")

// Grid is the read-only tile view a search runs over. world.Snapshot
// implements it.
type Grid interface {
	// Walkable reports whether c is walkable and whether c exists at all.
	Walkable(c grid.Coord) (walkable bool, ok bool)
}

// Finder runs A* searches. The zero value is usable: non-strict with the
// default ceiling.
type Finder struct {
	MaxExpansions int
	// Strict panics when the ceiling is hit. Off, the search logs a warning
	// and reports no path.
	Strict  bool
	Log     *zap.Logger
	Metrics *metrics.Collector
}

var defaultFinder Finder

// FindPath runs a search with the default Finder.
func FindPath(g Grid, start, goal grid.Coord) ([]grid.Coord, bool) {
	return defaultFinder.FindPath(g, start, goal)
}

// FindPath returns the cells from goal back to start, both inclusive, in
// goal→start order: the last element is always start. Callers walking the
// path pop from the end.
//
// The search fails when start or goal is absent from g or start is not
// walkable. An unwalkable goal is replaced by its first walkable neighbour
// in West, East, South, North order, or fails when it has none. Movement is
// 4-directional with unit cost and a Manhattan heuristic.
func (fd *Finder) FindPath(g Grid, start, goal grid.Coord) ([]grid.Coord, bool) {
	startOK, ok := g.Walkable(start)
	if !ok {
		return nil, false
	}
	goalOK, ok := g.Walkable(goal)
	if !ok || !startOK {
		return nil, false
	}
	if !goalOK {
		next, found := firstWalkableNeighbor(g, goal)
		if !found {
			return nil, false
		}
		goal = next
	}

	limit := fd.MaxExpansions
	if limit <= 0 {
		limit = DefaultMaxExpansions
	}

	nodes := make(map[grid.Coord]*node, 64)
	open := make(openSet, 0, 32)
	seq := 0

	first := &node{pos: start, f: grid.Manhattan(start, goal), dist: grid.Euclidean(start, goal)}
	nodes[start] = first
	heap.Push(&open, first)

	expanded := 0
	for open.Len() > 0 {
		expanded++
		if expanded > limit {
			return fd.exhausted(start, goal, expanded)
		}

		cur := heap.Pop(&open).(*node)
		if cur.pos == goal {
			fd.Metrics.ObservePathSearch(metrics.PathFound, expanded)
			return reconstruct(cur), true
		}
		cur.closed = true

		for _, np := range grid.Neighbors(cur.pos) {
			if w, ok := g.Walkable(np); !ok || !w {
				continue
			}
			tentative := cur.g + 1
			n, seen := nodes[np]
			if seen && n.closed {
				continue
			}
			if !seen {
				seq++
				n = &node{
					pos:  np,
					g:    tentative,
					f:    tentative + grid.Manhattan(np, goal),
					dist: grid.Euclidean(np, goal),
					seq:  seq,
					prev: cur,
				}
				nodes[np] = n
				heap.Push(&open, n)
				continue
			}
			if tentative >= n.g {
				continue
			}
			n.g = tentative
			n.f = tentative + grid.Manhattan(np, goal)
			n.prev = cur
			heap.Fix(&open, n.index)
		}
	}

	fd.Metrics.ObservePathSearch(metrics.PathNone, expanded)
	return nil, false
}

func (fd *Finder) exhausted(start, goal grid.Coord, expanded int) ([]grid.Coord, bool) {
	fd.Metrics.ObservePathSearch(metrics.PathExhausted, expanded)
	if fd.Strict {
		panic(fmt.Errorf("%w: %v -> %v after %d expansions", ErrSearchExhausted, start, goal, expanded))
	}
	if fd.Log != nil {
		fd.Log.Warn("path search exceeded expansion ceiling",
			zap.Stringer("start", start),
			zap.Stringer("goal", goal),
			zap.Int("expanded", expanded))
	}
	return nil, false
}

func firstWalkableNeighbor(g Grid, c grid.Coord) (grid.Coord, bool) {
	for _, n := range grid.Neighbors(c) {
		if w, ok := g.Walkable(n); ok && w {
			return n, true
		}
	}
	return grid.Coord{}, false
}

// reconstruct follows prev links from the goal node to the start.
func reconstruct(last *node) []grid.Coord {
	out := make([]grid.Coord, 0, last.g+1)
	for n := last; n != nil; n = n.prev {
		out = append(out, n.pos)
	}
	return out
}
