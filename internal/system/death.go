package system

import (
	"go.uber.org/zap"

	"github.com/roguegrid/sim/internal/component"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/core/event"
	coresys "github.com/roguegrid/sim/internal/core/system"
	"github.com/roguegrid/sim/internal/query"
)

const msgDies = "[RED %s] dies."

// DeathSystem queues non-player entities worn down to zero health for
// destruction. The player is left in place for the host to handle.
// Phase 3 (PostUpdate).
type DeathSystem struct {
	deps *Deps
}

func NewDeathSystem(deps *Deps) *DeathSystem {
	return &DeathSystem{deps: deps}
}

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DeathSystem) Update(tick uint64) {
	st := s.deps.Store
	var dead []ecs.EntityID
	st.Physics.Each(func(id ecs.EntityID, p *component.Physics) {
		if p.Dead() && !st.Players.Has(id) && !st.World.Marked(id) {
			dead = append(dead, id)
		}
	})
	for _, id := range dead {
		name := query.DisplayName(st, id)
		st.World.MarkForDestruction(id)
		s.deps.Messages.Postf(msgDies, name)
		event.Emit(s.deps.Bus, event.EntityDied{Entity: id, Name: name})
		s.deps.logger().Info("entity died",
			zap.Uint64("tick", tick),
			zap.Uint64("entity", uint64(id)),
			zap.String("name", name))
	}
}
