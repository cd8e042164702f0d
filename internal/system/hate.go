package system

import (
	"github.com/roguegrid/sim/internal/component"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/entity"
	"github.com/roguegrid/sim/internal/query"
)

// MarkHostile records aggressor as an enemy in owner's ledger, clamping the
// score to at most component.HostileScore. Scores only move down.
// Returns false when owner has no Actor (nothing keeps a ledger) or there
// is no aggressor.
func MarkHostile(s *entity.Store, owner, aggressor ecs.EntityID) bool {
	if aggressor == ecs.None || owner == aggressor {
		return false
	}
	a, ok := s.Actors.Get(owner)
	if !ok {
		return false
	}
	if a.Relationships == nil {
		a.Relationships = make(component.Relationships)
	}
	if cur, ok := a.Relationships[aggressor]; !ok || cur > component.HostileScore {
		a.Relationships[aggressor] = component.HostileScore
	}
	return true
}

// FirstEnemy returns the lowest-id living entity within radius of self that
// self regards as an enemy.
func FirstEnemy(s *entity.Store, self ecs.EntityID, radius float64) (ecs.EntityID, bool) {
	a, ok := s.Actors.Get(self)
	if !ok || len(a.Relationships) == 0 {
		return ecs.None, false
	}
	for _, id := range query.Within(s, self, radius) {
		if a.Relationships.IsEnemy(id) && !isDead(s, id) {
			return id, true
		}
	}
	return ecs.None, false
}

// Enemies lists every living entity self regards as an enemy, nearby or
// not, in id order. Stale entries for destroyed entities are skipped.
func Enemies(s *entity.Store, self ecs.EntityID) []ecs.EntityID {
	a, ok := s.Actors.Get(self)
	if !ok {
		return nil
	}
	var out []ecs.EntityID
	for _, id := range s.Transforms.IDs() {
		if a.Relationships.IsEnemy(id) && !isDead(s, id) {
			out = append(out, id)
		}
	}
	return out
}

// isDead is true for worn-down bodies the death pass has left in place
// (the player) or not yet flushed.
func isDead(s *entity.Store, id ecs.EntityID) bool {
	p, ok := s.Physics.Get(id)
	return ok && p.Dead()
}
