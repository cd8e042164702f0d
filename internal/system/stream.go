package system

import (
	"go.uber.org/zap"

	coresys "github.com/roguegrid/sim/internal/core/system"
	"github.com/roguegrid/sim/internal/query"
	"github.com/roguegrid/sim/internal/world"
)

// StreamSystem keeps the chunks around the player generated and the map's
// current chunk on the player. Phase 3 (PostUpdate).
type StreamSystem struct {
	deps *Deps
	ring int32
	last world.ChunkID
	init bool
}

func NewStreamSystem(deps *Deps, ring int32) *StreamSystem {
	return &StreamSystem{deps: deps, ring: ring}
}

func (s *StreamSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *StreamSystem) Update(tick uint64) {
	player, ok := query.Player(s.deps.Store)
	if !ok {
		return
	}
	id := s.deps.Map.Focus(query.GridPosition(s.deps.Store, player), s.ring)
	if !s.init || id != s.last {
		s.deps.logger().Debug("focus chunk changed",
			zap.Uint64("tick", tick),
			zap.Stringer("chunk", id),
			zap.Int("chunks", s.deps.Map.ChunkCount()))
		s.last, s.init = id, true
	}
}
