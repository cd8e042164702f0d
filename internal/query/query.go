// Package query answers read-only "where is X / who is at P" questions over
// the entity store.
package query

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roguegrid/sim/internal/component"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/entity"
	"github.com/roguegrid/sim/internal/grid"
)

// GridPosition returns the entity's grid position. The entity must have a
// Transform; a missing one is a programming error and panics.
func GridPosition(s *entity.Store, id ecs.EntityID) grid.Coord {
	return s.Transforms.MustGet(id).GridPosition
}

// EntityAt returns the first entity, in id order, standing on pos. Nothing
// stops two entities sharing a cell; the lowest id wins.
func EntityAt(s *entity.Store, pos grid.Coord) (ecs.EntityID, bool) {
	return s.Transforms.Find(func(_ ecs.EntityID, t *component.Transform) bool {
		return t.GridPosition == pos
	})
}

// Player returns the player-controlled entity. Spawning enforces at most
// one; if several exist anyway the last one in id order wins.
func Player(s *entity.Store) (ecs.EntityID, bool) {
	ids := s.Players.IDs()
	if len(ids) == 0 {
		return ecs.None, false
	}
	return ids[len(ids)-1], true
}

// Within returns every entity other than self whose grid position lies within
// radius (euclidean) of self, in id order.
func Within(s *entity.Store, self ecs.EntityID, radius float64) []ecs.EntityID {
	origin := GridPosition(s, self)
	var out []ecs.EntityID
	s.Transforms.Each(func(id ecs.EntityID, t *component.Transform) {
		if id == self {
			return
		}
		if grid.Euclidean(origin, t.GridPosition) <= radius {
			out = append(out, id)
		}
	})
	return out
}

// DisplayName is the name used in message log lines.
func DisplayName(s *entity.Store, id ecs.EntityID) string {
	if n, ok := s.Names.Get(id); ok && n.Value != "" {
		// Caser carries state; build one per call.
		return cases.Title(language.English).String(n.Value)
	}
	return fmt.Sprintf("Entity %d", id.Index())
}
