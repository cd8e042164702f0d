package event

import (
	"github.com/roguegrid/sim/internal/action"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/item"
)

// Resolver outcomes. Emitted during the update phase, delivered next tick.

// ActionResolved fires once per dispatched action.
type ActionResolved struct {
	Entity ecs.EntityID
	Kind   action.Kind
}

type Moved struct {
	Entity ecs.EntityID
	From   grid.Coord
	To     grid.Coord
}

// MoveBlocked fires when a MoveTo target was not walkable. At is the
// position the entity stayed on.
type MoveBlocked struct {
	Entity ecs.EntityID
	At     grid.Coord
	Target grid.Coord
}

type DamageTaken struct {
	Victim   ecs.EntityID
	Attacker ecs.EntityID // ecs.None when unattributed
	Amount   uint16       // after absorption
	Health   uint16       // remaining
}

type ItemThrown struct {
	Thrower ecs.EntityID
	Item    item.Item
	Target  ecs.EntityID
}

// EntityDied fires when the death system queues an entity for removal.
type EntityDied struct {
	Entity ecs.EntityID
	Name   string
}
