package world

import (
	"math/rand"

	"github.com/roguegrid/sim/internal/data"
	"github.com/roguegrid/sim/internal/grid"
)

// DefaultChunkSize is the side length of a chunk in tiles.
const DefaultChunkSize int32 = 40

// ChunkID is a chunk-space coordinate.
type ChunkID = grid.Coord

// Chunk is a size×size block of tiles whose footprint starts at
// Position*size. Chunks are created on first access and never dropped.
type Chunk struct {
	Position ChunkID
	origin   grid.Coord
	size     int32
	tiles    map[grid.Coord]Tile
}

// generateChunk fills a chunk by drawing each tile from the palette.
func generateChunk(pos ChunkID, size int32, palette *data.Palette, r *rand.Rand) *Chunk {
	c := &Chunk{
		Position: pos,
		origin:   pos.Mul(size),
		size:     size,
		tiles:    make(map[grid.Coord]Tile, int(size*size)),
	}
	for x := int32(0); x < size; x++ {
		for y := int32(0); y < size; y++ {
			e := palette.Pick(r)
			c.tiles[c.origin.Add(grid.C(x, y))] = Tile{
				Walkable: e.Walkable,
				Texture:  e.Name,
				Type:     ParseTileType(e.Type),
			}
		}
	}
	return c
}

func (c *Chunk) tile(at grid.Coord) (Tile, bool) {
	t, ok := c.tiles[at]
	return t, ok
}

func (c *Chunk) snapshot() Snapshot {
	out := make(Snapshot, len(c.tiles))
	for p, t := range c.tiles {
		out[p] = t
	}
	return out
}
