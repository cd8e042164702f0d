package system

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/roguegrid/sim/internal/action"
	"github.com/roguegrid/sim/internal/component"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/core/event"
	coresys "github.com/roguegrid/sim/internal/core/system"
)

// TurnSystem runs one scheduler pass per tick. Phase 2 (Update).
type TurnSystem struct {
	deps *Deps
}

func NewTurnSystem(deps *Deps) *TurnSystem {
	return &TurnSystem{deps: deps}
}

func (s *TurnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TurnSystem) Update(tick uint64) {
	n := s.RunPass()
	s.deps.logger().Debug("scheduler pass", zap.Uint64("tick", tick), zap.Int("actions", n))
}

type turnEntry struct {
	id    ecs.EntityID
	speed float32
}

// RunPass gives every actor Speed energy, then drains actions fastest first.
// An actor that can still pay after acting goes to the back of the queue
// and acts again this pass; one that cannot pay for its next action loses
// that action and is done. Returns the number of actions dispatched.
//
// Entities that lose Physics or Actor mid-pass panic.
func (s *TurnSystem) RunPass() int {
	start := time.Now()
	d := s.deps
	st := d.Store

	var order []turnEntry
	ecs.Each2(st.Physics, st.Actors, func(id ecs.EntityID, p *component.Physics, _ *component.Actor) {
		p.Energy += p.Speed
		order = append(order, turnEntry{id: id, speed: p.Speed})
	})
	// Each2 yields ascending ids; equal speeds keep that order.
	sort.SliceStable(order, func(i, j int) bool { return order[i].speed > order[j].speed })

	queue := make([]ecs.EntityID, len(order))
	for i, e := range order {
		queue[i] = e.id
	}

	dispatched := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		a := st.Actors.MustGet(id)
		p := st.Physics.MustGet(id)
		if p.Dead() || st.World.Marked(id) {
			continue
		}

		var act action.Action
		if a.Queued != nil {
			act = *a.Queued
			a.Queued = nil
		} else {
			act = Decide(d, id)
		}

		if act.Cost > p.Energy {
			d.Metrics.IncDiscarded()
			d.logger().Debug("action discarded",
				zap.Uint64("entity", uint64(id)),
				zap.Stringer("action", act),
				zap.Float32("energy", p.Energy))
			continue
		}
		p.Energy -= act.Cost
		if p.Energy > 0 {
			if act.Cost > 0 {
				queue = append(queue, id)
			} else {
				d.logger().Warn("zero-cost action not re-queued",
					zap.Uint64("entity", uint64(id)),
					zap.Stringer("action", act))
			}
		}

		Resolve(d, id, act.Event)
		dispatched++
		kind := action.KindOf(act.Event)
		d.Metrics.IncAction(string(kind))
		event.Emit(d.Bus, event.ActionResolved{Entity: id, Kind: kind})
	}

	d.Metrics.ObservePass(time.Since(start))
	return dispatched
}
