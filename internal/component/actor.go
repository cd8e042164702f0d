package component

import (
	"github.com/roguegrid/sim/internal/action"
	"github.com/roguegrid/sim/internal/core/ecs"
)

// Actor is per-entity turn state. Queued is set by the input layer and taken
// (cleared) by the turn scheduler.
type Actor struct {
	Queued        *action.Action
	Relationships Relationships
}

// Relationship is a hostility score. Negative means enemy.
type Relationship int32

// HostileScore is the ceiling applied when an entity is attacked or
// threatened; scores only ever move down to it.
const HostileScore Relationship = -500

// Relationships is an actor's ledger of how it regards other entities.
// A missing entry means neutral.
type Relationships map[ecs.EntityID]Relationship

// Score returns the stored score and whether an entry exists.
func (r Relationships) Score(other ecs.EntityID) (Relationship, bool) {
	s, ok := r[other]
	return s, ok
}

func (r Relationships) IsEnemy(other ecs.EntityID) bool {
	return r[other] < 0
}

// IsFriendly is true for every entity that is not an enemy, including
// entities with no entry.
func (r Relationships) IsFriendly(other ecs.EntityID) bool {
	return r[other] >= 0
}
