package main

import (
	"github.com/roguegrid/sim/internal/component"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/query"
	"github.com/roguegrid/sim/internal/system"
)

// wanderRadius bounds how far the autopilot sends the player per path.
const wanderRadius = 12

// autopilot stands in for a UI in the headless host. The player throws
// whatever it carries at an enemy or the nearest actor, then wanders
// between random reachable cells.
type autopilot struct {
	deps  *system.Deps
	input *system.InputSystem
}

func newAutopilot(deps *system.Deps, input *system.InputSystem) *autopilot {
	return &autopilot{deps: deps, input: input}
}

func (a *autopilot) step() {
	st := a.deps.Store
	player, ok := query.Player(st)
	if !ok {
		return
	}
	if inv, ok := st.Inventories.Get(player); ok && len(inv.Items) > 0 {
		if target, ok := a.pickTarget(player); ok && a.input.QueueThrow(inv.Items[0].Name, target) {
			return
		}
	}
	if len(a.input.Pending()) > 0 {
		return
	}
	pos := query.GridPosition(st, player)
	for try := 0; try < 4; try++ {
		goal := pos.Add(grid.C(
			int32(a.deps.Rand.Intn(2*wanderRadius+1)-wanderRadius),
			int32(a.deps.Rand.Intn(2*wanderRadius+1)-wanderRadius),
		))
		if a.input.RequestPath(goal) {
			return
		}
	}
}

// pickTarget prefers something that already fought the player, then the
// nearest actor.
func (a *autopilot) pickTarget(self ecs.EntityID) (ecs.EntityID, bool) {
	if enemies := system.Enemies(a.deps.Store, self); len(enemies) > 0 {
		return enemies[0], true
	}
	return a.nearestActor(self)
}

func (a *autopilot) nearestActor(self ecs.EntityID) (ecs.EntityID, bool) {
	st := a.deps.Store
	origin := query.GridPosition(st, self)
	best, bestDist := ecs.None, -1
	ecs.Each2(st.Actors, st.Transforms, func(id ecs.EntityID, _ *component.Actor, t *component.Transform) {
		if id == self {
			return
		}
		if d := grid.Manhattan(origin, t.GridPosition); bestDist < 0 || d < bestDist {
			best, bestDist = id, d
		}
	})
	return best, bestDist >= 0
}
