package system

import (
	"math"

	"github.com/roguegrid/sim/internal/action"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/query"
	"github.com/roguegrid/sim/internal/scripting"
)

// Decide picks an action for an actor with nothing queued.
//
// Players wait. Everyone else looks for the first enemy within sight: an
// adjacent one is attacked, a distant one is approached one step along an
// A* path. With no enemy in play the idle hook (Lua idle_action) decides,
// falling back to a random cardinal step.
func Decide(d *Deps, self ecs.EntityID) action.Action {
	cost := d.actionCost()
	if d.Store.Players.Has(self) {
		return action.NewWait(cost)
	}

	pos := query.GridPosition(d.Store, self)
	if target, ok := FirstEnemy(d.Store, self, d.sightRadius()); ok {
		tpos := query.GridPosition(d.Store, target)
		if grid.Manhattan(pos, tpos) <= 1 {
			return action.NewAttack(target, d.attackAmount(), cost)
		}
		if next, ok := nextStep(d, pos, tpos); ok {
			return action.NewMoveTo(next, cost)
		}
	}
	return idleAction(d, self, pos, cost)
}

// nextStep searches a snapshot around pos and returns the first cell to
// move into on the way to goal.
func nextStep(d *Deps, pos, goal grid.Coord) (grid.Coord, bool) {
	radius := int32(math.Ceil(d.sightRadius())) * 2
	snap := d.Map.Snapshot(pos, radius)
	p, ok := d.finder().FindPath(snap, pos, goal)
	if !ok {
		return grid.Coord{}, false
	}
	// drop the start cell; the new tail is the next step
	p = p[:len(p)-1]
	if len(p) == 0 {
		return grid.Coord{}, false
	}
	return p[len(p)-1], true
}

func idleAction(d *Deps, self ecs.EntityID, pos grid.Coord, cost float32) action.Action {
	if d.Scripts != nil {
		ctx := scripting.IdleContext{EntityID: uint64(self), X: pos.X, Y: pos.Y}
		if p, ok := d.Store.Physics.Get(self); ok {
			ctx.Health = p.Health
			ctx.MaxHealth = p.MaxHealth
			ctx.Energy = p.Energy
			ctx.Speed = p.Speed
		}
		if dec, ok := d.Scripts.IdleAction(ctx); ok {
			switch dec.Kind {
			case scripting.IdleWait:
				return action.NewWait(cost)
			case scripting.IdleStep:
				return action.NewMoveTo(pos.Add(grid.C(dec.DX, dec.DY)), cost)
			}
		}
	}
	dir := grid.Cardinals[d.intn(len(grid.Cardinals))]
	return action.NewMoveTo(pos.Neighbor(dir), cost)
}
