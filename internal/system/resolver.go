package system

import (
	"go.uber.org/zap"

	"github.com/roguegrid/sim/internal/action"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/core/event"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/query"
)

// Player-facing lines posted by the resolver.
const (
	msgPathBlocked = "That path is blocked"
	msgThrew       = "You threw a [BLUE %s ] at [RED %s]"
)

// Resolve applies ev on behalf of self. It mutates components, reads the
// map, posts message lines and emits bus events; it keeps no state.
func Resolve(d *Deps, self ecs.EntityID, ev action.Event) {
	switch e := ev.(type) {
	case action.MoveTo:
		resolveMoveTo(d, self, e.Dest)
	case action.MoveDirection:
		resolveMoveDirection(d, self, e.Delta)
	case action.Attack:
		Resolve(d, e.Target, action.TakeDamage{Attacker: self, Amount: e.Amount})
	case action.TakeDamage:
		resolveTakeDamage(d, self, e)
	case action.ThrowItem:
		resolveThrow(d, self, e)
	case action.Empty, nil:
	default:
		d.logger().Warn("unhandled action event", zap.String("kind", string(action.KindOf(ev))))
	}
}

func resolveMoveTo(d *Deps, self ecs.EntityID, dest grid.Coord) {
	t, ok := d.Store.Transforms.Get(self)
	if !ok {
		return
	}
	from := t.GridPosition
	if !d.Map.IsWalkable(dest) {
		if d.Store.Players.Has(self) {
			d.Messages.Post(msgPathBlocked)
		}
		event.Emit(d.Bus, event.MoveBlocked{Entity: self, At: from, Target: dest})
		dest = from
	}
	d.Store.Place(t, dest)
	if dest != from {
		event.Emit(d.Bus, event.Moved{Entity: self, From: from, To: dest})
	}
}

// resolveMoveDirection never checks walkability.
func resolveMoveDirection(d *Deps, self ecs.EntityID, delta grid.Coord) {
	t, ok := d.Store.Transforms.Get(self)
	if !ok {
		return
	}
	from := t.GridPosition
	d.Store.Place(t, from.Add(delta))
	if !delta.IsZero() {
		event.Emit(d.Bus, event.Moved{Entity: self, From: from, To: t.GridPosition})
	}
}

func resolveTakeDamage(d *Deps, victim ecs.EntityID, e action.TakeDamage) {
	if !d.Store.World.Alive(victim) {
		d.logger().Debug("damage to missing entity", zap.Uint64("entity", uint64(victim)))
		return
	}
	amount := e.Amount
	if d.Store.Invulnerable.Has(victim) {
		amount = 0
	}
	var health uint16
	if p, ok := d.Store.Physics.Get(victim); ok {
		if p.Health > amount {
			p.Health -= amount
		} else {
			p.Health = 0
		}
		health = p.Health
	}
	if e.Attacker != ecs.None {
		MarkHostile(d.Store, victim, e.Attacker)
	}
	event.Emit(d.Bus, event.DamageTaken{
		Victim:   victim,
		Attacker: e.Attacker,
		Amount:   amount,
		Health:   health,
	})
}

func resolveThrow(d *Deps, thrower ecs.EntityID, e action.ThrowItem) {
	MarkHostile(d.Store, e.Target, thrower)
	d.Messages.Postf(msgThrew, e.Item.Name, query.DisplayName(d.Store, e.Target))
	event.Emit(d.Bus, event.ItemThrown{Thrower: thrower, Item: e.Item, Target: e.Target})
}
