package entity

import (
	"errors"
	"fmt"

	"github.com/roguegrid/sim/internal/component"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/item"
)

// ErrPlayerExists is returned when a second player-controlled entity is spawned.
var ErrPlayerExists = errors.New("entity: a player entity already exists")

// Store is the entity store the simulation runs over: the ECS world plus one
// typed store per component. Single writer; the game loop owns it.
type Store struct {
	World        *ecs.World
	Transforms   *ecs.PtrComponentStore[component.Transform]
	Actors       *ecs.PtrComponentStore[component.Actor]
	Physics      *ecs.PtrComponentStore[component.Physics]
	Players      *ecs.PtrComponentStore[component.PlayerController]
	Invulnerable *ecs.PtrComponentStore[component.Invulnerable]
	Inventories  *ecs.PtrComponentStore[component.Inventory]
	Names        *ecs.PtrComponentStore[component.Name]

	tilePixels int32
}

// NewStore creates an empty store. tilePixels is the renderer's tile size,
// used to derive screen positions.
func NewStore(tilePixels int32) *Store {
	s := &Store{
		World:        ecs.NewWorld(),
		Transforms:   ecs.NewPtrComponentStore[component.Transform](),
		Actors:       ecs.NewPtrComponentStore[component.Actor](),
		Physics:      ecs.NewPtrComponentStore[component.Physics](),
		Players:      ecs.NewPtrComponentStore[component.PlayerController](),
		Invulnerable: ecs.NewPtrComponentStore[component.Invulnerable](),
		Inventories:  ecs.NewPtrComponentStore[component.Inventory](),
		Names:        ecs.NewPtrComponentStore[component.Name](),
		tilePixels:   tilePixels,
	}
	reg := s.World.Registry()
	reg.Register(s.Transforms)
	reg.Register(s.Actors)
	reg.Register(s.Physics)
	reg.Register(s.Players)
	reg.Register(s.Invulnerable)
	reg.Register(s.Inventories)
	reg.Register(s.Names)
	return s
}

// TilePixels returns the tile size in pixels.
func (s *Store) TilePixels() int32 { return s.tilePixels }

// Def describes an entity to spawn.
type Def struct {
	Name         string
	Sprite       string
	Position     grid.Coord
	Health       uint16
	MaxHealth    uint16 // 0 means same as Health
	Speed        float32
	Energy       float32
	Player       bool
	Invulnerable bool
	Actor        bool // scheduled by the turn system; players always are
	Items        []item.Item
}

// Spawn creates an entity from d. At most one player entity may exist.
func (s *Store) Spawn(d Def) (ecs.EntityID, error) {
	if d.Player && s.Players.Len() > 0 {
		return ecs.None, fmt.Errorf("spawn %q: %w", d.Name, ErrPlayerExists)
	}

	id := s.World.CreateEntity()
	t := &component.Transform{ScaleX: 1, ScaleY: 1}
	s.Transforms.Set(id, t)
	s.Place(t, d.Position)

	maxHP := d.MaxHealth
	if maxHP == 0 {
		maxHP = d.Health
	}
	s.Physics.Set(id, &component.Physics{
		Health:    d.Health,
		MaxHealth: maxHP,
		Speed:     d.Speed,
		Energy:    d.Energy,
	})
	if d.Actor || d.Player {
		s.Actors.Set(id, &component.Actor{Relationships: make(component.Relationships)})
	}
	if d.Player {
		s.Players.Set(id, &component.PlayerController{})
	}
	if d.Invulnerable {
		s.Invulnerable.Set(id, &component.Invulnerable{})
	}
	if d.Name != "" || d.Sprite != "" {
		s.Names.Set(id, &component.Name{Value: d.Name, Sprite: d.Sprite})
	}
	if len(d.Items) > 0 {
		items := make([]item.Item, len(d.Items))
		copy(items, d.Items)
		s.Inventories.Set(id, &component.Inventory{Items: items})
	}
	return id, nil
}

// Place sets the authoritative grid position and the derived screen position.
func (s *Store) Place(t *component.Transform, at grid.Coord) {
	t.GridPosition = at
	px := at.Mul(s.tilePixels)
	t.ScreenX = float32(px.X)
	t.ScreenY = float32(px.Y)
}
