package system

import (
	"go.uber.org/zap"

	"github.com/roguegrid/sim/internal/action"
	"github.com/roguegrid/sim/internal/core/ecs"
	coresys "github.com/roguegrid/sim/internal/core/system"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/query"
)

// PlayerActionCost is the energy cost of every player-issued action.
const PlayerActionCost float32 = 1

// maxPathRadius bounds the snapshot a path request searches; goals further
// away than this from the player are unreachable in one request.
const maxPathRadius = 64

// QueueAction sets the action id takes on its next turn, replacing any
// queued one. False when id is not an actor.
func QueueAction(d *Deps, id ecs.EntityID, act action.Action) bool {
	a, ok := d.Store.Actors.Get(id)
	if !ok {
		return false
	}
	a.Queued = &act
	return true
}

// InputSystem turns UI requests into queued player actions. It holds the
// path the player is following and feeds it one adjacent step per tick.
// When the player is not next to the following cell (the previous step was
// discarded or blocked) the rest of the path is planned again.
// Phase 0 (Input).
type InputSystem struct {
	deps *Deps
	// goal→start order as returned by the pathfinder, start already dropped;
	// the last element is the next cell.
	pending []grid.Coord
}

func NewInputSystem(deps *Deps) *InputSystem {
	return &InputSystem{deps: deps}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(tick uint64) {
	if len(s.pending) == 0 {
		return
	}
	player, ok := query.Player(s.deps.Store)
	if !ok {
		s.ClearPath()
		return
	}
	a := s.deps.Store.Actors.MustGet(player)
	// an explicit action queued this tick wins over path following
	if a.Queued != nil {
		return
	}
	pos := query.GridPosition(s.deps.Store, player)
	for len(s.pending) > 0 && s.pending[len(s.pending)-1] == pos {
		s.pending = s.pending[:len(s.pending)-1]
	}
	if len(s.pending) == 0 {
		return
	}
	next := s.pending[len(s.pending)-1]
	if grid.Manhattan(pos, next) != 1 {
		// the last step was discarded or blocked; plan again from here
		goal := s.pending[0]
		if !s.RequestPath(goal) || len(s.pending) == 0 {
			s.deps.logger().Debug("path abandoned",
				zap.Uint64("tick", tick),
				zap.Stringer("at", pos),
				zap.Stringer("goal", goal))
			s.ClearPath()
			return
		}
		next = s.pending[len(s.pending)-1]
	}
	s.pending = s.pending[:len(s.pending)-1]
	act := action.NewMoveTo(next, PlayerActionCost)
	a.Queued = &act
	s.deps.logger().Debug("path step queued",
		zap.Uint64("tick", tick),
		zap.Stringer("cell", next),
		zap.Int("remaining", len(s.pending)))
}

// RequestPath plans a route from the player to goal and follows it from
// the next tick. False leaves any previous path untouched.
func (s *InputSystem) RequestPath(goal grid.Coord) bool {
	player, ok := query.Player(s.deps.Store)
	if !ok {
		return false
	}
	start := query.GridPosition(s.deps.Store, player)
	radius := int32(grid.Manhattan(start, goal)) + 8
	if radius > maxPathRadius {
		radius = maxPathRadius
	}
	p, ok := s.deps.finder().FindPath(s.deps.Map.Snapshot(start, radius), start, goal)
	if !ok {
		return false
	}
	s.pending = p[:len(p)-1]
	return true
}

// Step replaces any pending path with a single move to the neighbouring
// cell in dir.
func (s *InputSystem) Step(dir grid.Dir) bool {
	player, ok := query.Player(s.deps.Store)
	if !ok {
		return false
	}
	s.pending = []grid.Coord{query.GridPosition(s.deps.Store, player).Neighbor(dir)}
	return true
}

// QueueThrow takes the first inventory item named name from the player and
// queues throwing it at target. False when the player does not carry it.
func (s *InputSystem) QueueThrow(name string, target ecs.EntityID) bool {
	player, ok := query.Player(s.deps.Store)
	if !ok {
		return false
	}
	inv, ok := s.deps.Store.Inventories.Get(player)
	if !ok {
		return false
	}
	idx := -1
	for i, it := range inv.Items {
		if it.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	it := inv.Items[idx]
	inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
	return QueueAction(s.deps, player, action.NewThrow(it, target, PlayerActionCost))
}

// Pending returns the cells still to walk, next cell first.
func (s *InputSystem) Pending() []grid.Coord {
	out := make([]grid.Coord, 0, len(s.pending))
	for i := len(s.pending) - 1; i >= 0; i-- {
		out = append(out, s.pending[i])
	}
	return out
}

func (s *InputSystem) ClearPath() { s.pending = nil }
