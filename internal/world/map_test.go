package world

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/roguegrid/sim/internal/entity"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/metrics"
)

func newTestMap(t *testing.T) *Map {
	t.Helper()
	return New(Options{Seed: 42})
}

func TestChunkOf(t *testing.T) {
	m := newTestMap(t)
	cases := []struct {
		in   grid.Coord
		want ChunkID
	}{
		{grid.C(30, 30), grid.C(0, 0)},
		{grid.C(0, 30), grid.C(0, 0)},
		{grid.C(0, 0), grid.C(0, 0)},
		{grid.C(40, 0), grid.C(1, 0)},
		{grid.C(79, 80), grid.C(1, 2)},
		{grid.C(101*40, 404*40), grid.C(101, 404)},
		// truncation toward zero
		{grid.C(-5, -39), grid.C(0, 0)},
		{grid.C(-40, -45), grid.C(-1, -1)},
	}
	for _, c := range cases {
		if got := m.ChunkOf(c.in); got != c.want {
			t.Errorf("ChunkOf(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestChunkOfStableAcrossGeneration(t *testing.T) {
	m := newTestMap(t)
	p := grid.C(130, 45)
	before := m.ChunkOf(p)
	m.EnsureChunk(before)
	m.Focus(p, 1)
	if after := m.ChunkOf(p); after != before {
		t.Fatalf("ChunkOf changed after generation: %v -> %v", before, after)
	}
}

func TestNewGeneratesOriginChunk(t *testing.T) {
	m := newTestMap(t)
	if !m.HasChunk(grid.C(0, 0)) {
		t.Fatalf("origin chunk missing")
	}
	tiles, ok := m.ChunkTiles(grid.C(0, 0))
	if !ok || len(tiles) != 40*40 {
		t.Fatalf("origin chunk has %d tiles, want 1600", len(tiles))
	}
}

func TestGeneratedWalkableRatio(t *testing.T) {
	m := newTestMap(t)
	tiles := m.CurrentChunkTiles()
	walkable := 0
	for _, tl := range tiles {
		if tl.Walkable {
			walkable++
		}
		if tl.Type == TileTree && tl.Walkable {
			t.Fatalf("tree tile marked walkable")
		}
	}
	ratio := float64(walkable) / float64(len(tiles))
	if ratio < 0.85 || ratio > 0.95 {
		t.Fatalf("walkable ratio = %.3f, want ~0.90", ratio)
	}
}

func TestEnsureChunkFootprint(t *testing.T) {
	m := newTestMap(t)
	id := grid.C(2, 3)
	if !m.EnsureChunk(id) {
		t.Fatalf("EnsureChunk did not generate")
	}
	if m.EnsureChunk(id) {
		t.Fatalf("EnsureChunk generated twice")
	}
	if _, ok := m.Tile(grid.C(80, 120)); !ok {
		t.Fatalf("chunk origin tile missing")
	}
	if _, ok := m.Tile(grid.C(119, 159)); !ok {
		t.Fatalf("chunk far corner tile missing")
	}
}

func TestNegativeChunkTruncation(t *testing.T) {
	m := newTestMap(t)
	m.EnsureChunk(grid.C(-1, 0))
	// Footprint of chunk -1 is x in [-40,-1], but only x == -40 resolves
	// back to it; -41 truncates to -1 as well and lies outside it, while
	// -1..-39 truncate to chunk 0.
	if _, ok := m.Tile(grid.C(-40, 0)); !ok {
		t.Fatalf("(-40,0) missing")
	}
	if _, ok := m.Tile(grid.C(-41, 0)); ok {
		t.Fatalf("(-41,0) unexpectedly present")
	}
	if _, ok := m.Tile(grid.C(-1, 0)); ok {
		t.Fatalf("(-1,0) unexpectedly present")
	}
}

func TestAbsentTilesAreNotWalkable(t *testing.T) {
	m := newTestMap(t)
	if m.IsWalkable(grid.C(500, 500)) {
		t.Fatalf("tile in ungenerated chunk reported walkable")
	}
	if _, ok := m.Tile(grid.C(500, 500)); ok {
		t.Fatalf("Tile generated a chunk on read")
	}
	// (-5,0) resolves to chunk 0, whose footprint starts at 0.
	if _, ok := m.Tile(grid.C(-5, 0)); ok {
		t.Fatalf("negative coordinate found in chunk 0")
	}
	if m.ChunkCount() != 1 {
		t.Fatalf("reads generated chunks: %d", m.ChunkCount())
	}
}

func TestTilesInRangeSize(t *testing.T) {
	m := newTestMap(t)
	if got := len(m.TilesInRange(grid.C(5, 5), 2)); got != 25 {
		t.Fatalf("TilesInRange r=2 = %d, want 25", got)
	}
	if got := len(m.TilesInRange(grid.C(20, 20), 10)); got != 441 {
		t.Fatalf("TilesInRange r=10 = %d, want 441", got)
	}
	// clipped at the edge of the only chunk
	if got := len(m.TilesInRange(grid.C(0, 0), 2)); got != 9 {
		t.Fatalf("TilesInRange at corner = %d, want 9", got)
	}
}

func TestSnapshotGeneratesAndDetaches(t *testing.T) {
	m := newTestMap(t)
	snap := m.Snapshot(grid.C(39, 20), 3)
	if len(snap) != 49 {
		t.Fatalf("Snapshot = %d tiles, want 49", len(snap))
	}
	if !m.HasChunk(grid.C(1, 0)) {
		t.Fatalf("Snapshot did not generate neighbouring chunk")
	}

	p := grid.C(39, 20)
	m.SetTile(p, Tile{Walkable: false, Texture: "wall"})
	if snap[p].Texture == "wall" {
		t.Fatalf("snapshot aliased live map data")
	}
	if w, ok := snap.Walkable(grid.C(1000, 1000)); w || ok {
		t.Fatalf("Walkable on absent coord = %v,%v", w, ok)
	}
}

func TestSetTile(t *testing.T) {
	m := newTestMap(t)
	if !m.SetTile(grid.C(6, 5), Tile{Walkable: false, Texture: "tree", Type: TileTree}) {
		t.Fatalf("SetTile on existing tile failed")
	}
	if m.IsWalkable(grid.C(6, 5)) {
		t.Fatalf("blocked tile still walkable")
	}
	if m.SetTile(grid.C(900, 900), Tile{}) {
		t.Fatalf("SetTile created a tile in an absent chunk")
	}
}

func TestFocus(t *testing.T) {
	m := newTestMap(t)
	id := m.Focus(grid.C(85, 5), 1)
	if id != grid.C(2, 0) || m.CurrentChunk() != id {
		t.Fatalf("Focus = %v, current = %v", id, m.CurrentChunk())
	}
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			if !m.HasChunk(id.Add(grid.C(dx, dy))) {
				t.Fatalf("ring chunk %v missing", id.Add(grid.C(dx, dy)))
			}
		}
	}
}

func TestChunkMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc, err := metrics.NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	m := New(Options{Seed: 1, Metrics: mc})
	m.EnsureChunk(grid.C(1, 0))
	m.EnsureChunk(grid.C(1, 0))
	if got := testutil.ToFloat64(mc.ChunksGenerated); got != 2 {
		t.Fatalf("chunks generated = %v, want 2", got)
	}
}

func TestEntitiesInChunk(t *testing.T) {
	m := newTestMap(t)
	m.EnsureChunk(grid.C(1, 1))
	s := entity.NewStore(16)

	size := m.ChunkSize()
	s.Spawn(entity.Def{Name: "far", Position: grid.C(size+1, size+1)})
	a, _ := s.Spawn(entity.Def{Name: "a", Position: grid.C(size, size)})
	s.Spawn(entity.Def{Name: "near", Position: grid.C(size-1, size-1)})

	if got := m.OtherEntitiesInSameChunk(s, a); len(got) != 1 {
		t.Fatalf("OtherEntitiesInSameChunk = %v, want 1 entity", got)
	}
	if got := m.EntitiesInChunk(s, m.ChunkOf(grid.C(size-1, size-1))); len(got) != 1 {
		t.Fatalf("EntitiesInChunk(0,0) = %v, want 1 entity", got)
	}
	if got := m.EntitiesInChunk(s, grid.C(7, 7)); len(got) != 0 {
		t.Fatalf("EntitiesInChunk(empty) = %v", got)
	}
}
