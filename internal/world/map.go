package world

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/roguegrid/sim/internal/data"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/metrics"
)

// Options configures a Map. Zero values select defaults.
type Options struct {
	ChunkSize int32
	Seed      int64 // 0 seeds from the clock
	Palette   *data.Palette
	Log       *zap.Logger
	Metrics   *metrics.Collector
}

// Map is the chunked, unbounded tile world. One Map is shared by the
// scheduler, the AI and the input layer; it is passed explicitly rather than
// held in a global. Every exported method takes the lock once and never
// calls another exported method while holding it.
type Map struct {
	mu        sync.Mutex
	chunkSize int32
	chunks    map[ChunkID]*Chunk
	current   ChunkID
	palette   *data.Palette
	rng       *rand.Rand
	log       *zap.Logger
	metrics   *metrics.Collector
}

// New creates a map with the origin chunk already generated.
func New(opts Options) *Map {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Palette == nil {
		opts.Palette = data.DefaultPalette()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	m := &Map{
		chunkSize: opts.ChunkSize,
		chunks:    make(map[ChunkID]*Chunk, 16),
		palette:   opts.Palette,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		log:       opts.Log,
		metrics:   opts.Metrics,
	}
	m.ensureLocked(ChunkID{})
	return m
}

// ChunkSize returns the chunk side length in tiles.
func (m *Map) ChunkSize() int32 { return m.chunkSize }

// ChunkOf resolves the chunk holding coord. Each axis is divided with
// truncation toward zero and a zero axis maps to chunk axis 0, so negative
// coordinates between -1 and -(size-1) land in chunk 0 rather than -1.
// Kept as is; see DESIGN.md.
func (m *Map) ChunkOf(coord grid.Coord) ChunkID {
	return ChunkOf(coord, m.chunkSize)
}

// ChunkOf is the free-function form of Map.ChunkOf.
func ChunkOf(coord grid.Coord, size int32) ChunkID {
	var id ChunkID
	if coord.X != 0 {
		id.X = coord.X / size
	}
	if coord.Y != 0 {
		id.Y = coord.Y / size
	}
	return id
}

// EnsureChunk generates the chunk if it does not exist yet. It reports
// whether a new chunk was generated.
func (m *Map) EnsureChunk(id ChunkID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, created := m.ensureLocked(id)
	return created
}

// HasChunk reports whether the chunk has been generated.
func (m *Map) HasChunk(id ChunkID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.chunks[id]
	return ok
}

// ChunkCount returns how many chunks exist.
func (m *Map) ChunkCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chunks)
}

// Tile returns the tile at coord. Coordinates in ungenerated chunks are
// absent; this never generates.
func (m *Map) Tile(coord grid.Coord) (Tile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tileLocked(coord)
}

// IsWalkable is false for absent tiles.
func (m *Map) IsWalkable(coord grid.Coord) bool {
	t, ok := m.Tile(coord)
	return ok && t.Walkable
}

// SetTile overwrites an existing tile. It reports false when the tile is
// absent. Used by scenario setup and tests to carve or block terrain.
func (m *Map) SetTile(coord grid.Coord, t Tile) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chunks[m.ChunkOf(coord)]
	if !ok {
		return false
	}
	if _, ok := c.tiles[coord]; !ok {
		return false
	}
	c.tiles[coord] = t
	return true
}

// TilesInRange returns the existing tiles in the inclusive square of side
// 2*radius+1 centred on origin. Missing chunks contribute nothing.
func (m *Map) TilesInRange(origin grid.Coord, radius int32) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rangeLocked(origin, radius)
}

// Snapshot is TilesInRange after generating every chunk the square touches.
// The result is a copy and safe to search without the lock.
func (m *Map) Snapshot(origin grid.Coord, radius int32) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[ChunkID]struct{}, 4)
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			id := m.ChunkOf(origin.Add(grid.C(x, y)))
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			m.ensureLocked(id)
		}
	}
	return m.rangeLocked(origin, radius)
}

// Focus makes the chunk holding coord current and generates it together
// with every chunk within ring chunks of it.
func (m *Map) Focus(coord grid.Coord, ring int32) ChunkID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.ChunkOf(coord)
	m.current = id
	for dx := -ring; dx <= ring; dx++ {
		for dy := -ring; dy <= ring; dy++ {
			m.ensureLocked(id.Add(grid.C(dx, dy)))
		}
	}
	return id
}

// CurrentChunk returns the id of the camera/UI chunk.
func (m *Map) CurrentChunk() ChunkID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// CurrentChunkTiles copies the current chunk's tiles.
func (m *Map) CurrentChunkTiles() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, _ := m.ensureLocked(m.current)
	return c.snapshot()
}

// ChunkTiles copies one chunk's tiles, if it exists.
func (m *Map) ChunkTiles(id ChunkID) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chunks[id]
	if !ok {
		return nil, false
	}
	return c.snapshot(), true
}

func (m *Map) ensureLocked(id ChunkID) (*Chunk, bool) {
	if c, ok := m.chunks[id]; ok {
		return c, false
	}
	c := generateChunk(id, m.chunkSize, m.palette, m.rng)
	m.chunks[id] = c
	m.metrics.IncChunksGenerated()
	m.log.Debug("chunk generated",
		zap.Int32("cx", id.X),
		zap.Int32("cy", id.Y),
		zap.Int("chunks", len(m.chunks)))
	return c, true
}

func (m *Map) tileLocked(coord grid.Coord) (Tile, bool) {
	c, ok := m.chunks[m.ChunkOf(coord)]
	if !ok {
		return Tile{}, false
	}
	return c.tile(coord)
}

func (m *Map) rangeLocked(origin grid.Coord, radius int32) Snapshot {
	out := make(Snapshot, int((2*radius+1)*(2*radius+1)))
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			p := origin.Add(grid.C(x, y))
			if t, ok := m.tileLocked(p); ok {
				out[p] = t
			}
		}
	}
	return out
}
