package world

import "github.com/roguegrid/sim/internal/grid"

// TileType classifies terrain beyond its texture.
type TileType uint8

const (
	TileEmpty TileType = iota
	TileTree
)

func (t TileType) String() string {
	if t == TileTree {
		return "tree"
	}
	return "empty"
}

// ParseTileType maps a data-file type name. Anything but "tree" is empty.
func ParseTileType(s string) TileType {
	if s == "tree" {
		return TileTree
	}
	return TileEmpty
}

// Tile is persistent terrain. Pathfinding keeps its working state (g, f,
// previous) elsewhere, per search.
type Tile struct {
	Walkable bool
	Texture  string
	Type     TileType
}

// Snapshot is a detached copy of tiles keyed by absolute coordinate. It is
// what the pathfinder searches, so the map lock is never held across A*.
type Snapshot map[grid.Coord]Tile

// Walkable reports whether c is walkable and whether it is present at all.
func (s Snapshot) Walkable(c grid.Coord) (walkable bool, ok bool) {
	t, ok := s[c]
	return t.Walkable, ok
}
