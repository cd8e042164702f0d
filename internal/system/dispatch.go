package system

import (
	"github.com/roguegrid/sim/internal/core/event"
	coresys "github.com/roguegrid/sim/internal/core/system"
)

// EventDispatchSystem delivers the events emitted last tick.
// Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ uint64) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
