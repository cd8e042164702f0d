package system

import (
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roguegrid/sim/internal/config"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/core/event"
	"github.com/roguegrid/sim/internal/data"
	"github.com/roguegrid/sim/internal/entity"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/item"
	"github.com/roguegrid/sim/internal/metrics"
	"github.com/roguegrid/sim/internal/msglog"
	"github.com/roguegrid/sim/internal/world"
)

// newTestDeps builds a world where every generated tile is walkable.
func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	pal, err := data.NewPalette([]data.TerrainEntry{{Name: "dot", Weight: 1, Walkable: true}})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	mc, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return &Deps{
		Store:    entity.NewStore(16),
		Map:      world.New(world.Options{ChunkSize: 40, Seed: 1, Palette: pal, Metrics: mc}),
		Messages: msglog.New(0),
		Bus:      event.NewBus(),
		Metrics:  mc,
		Rand:     rand.New(rand.NewSource(1)),
		AI:       config.Default().AI,
	}
}

func spawn(t *testing.T, d *Deps, def entity.Def) ecs.EntityID {
	t.Helper()
	id, err := d.Store.Spawn(def)
	if err != nil {
		t.Fatalf("Spawn(%s): %v", def.Name, err)
	}
	return id
}

func spawnPlayer(t *testing.T, d *Deps, at grid.Coord) ecs.EntityID {
	t.Helper()
	return spawn(t, d, entity.Def{
		Name:     "player",
		Position: at,
		Health:   10,
		Speed:    1,
		Player:   true,
		Items:    []item.Item{{Name: "rock", Kind: item.KindRock}},
	})
}

func spawnCreature(t *testing.T, d *Deps, at grid.Coord, speed float32) ecs.EntityID {
	t.Helper()
	return spawn(t, d, entity.Def{
		Name:     "creature",
		Position: at,
		Health:   10,
		Speed:    speed,
		Actor:    true,
	})
}

func block(t *testing.T, d *Deps, at grid.Coord) {
	t.Helper()
	if !d.Map.SetTile(at, world.Tile{Walkable: false, Texture: "tree", Type: world.TileTree}) {
		t.Fatalf("SetTile(%v): chunk missing", at)
	}
}

// drainResolved delivers pending bus events and returns the ActionResolved
// entities in order.
func drainResolved(d *Deps) []ecs.EntityID {
	var out []ecs.EntityID
	event.Subscribe(d.Bus, func(e event.ActionResolved) { out = append(out, e.Entity) })
	d.Bus.SwapBuffers()
	d.Bus.DispatchAll()
	return out
}

var statueDef = entity.Def{Name: "statue", Health: 5}

// creatureDef is a creature with the given health.
func creatureDef(at grid.Coord, health uint16) entity.Def {
	return entity.Def{Name: "creature", Position: at, Health: health, Speed: 1, Actor: true}
}
