package system

import (
	coresys "github.com/roguegrid/sim/internal/core/system"
	"github.com/roguegrid/sim/internal/msglog"
)

// OutputSystem hands message lines posted since the last tick to a sink,
// typically the host's display or logger. Phase 4 (Output).
type OutputSystem struct {
	messages *msglog.Log
	sink     func(tick uint64, e msglog.Entry)
	seen     int
}

func NewOutputSystem(messages *msglog.Log, sink func(uint64, msglog.Entry)) *OutputSystem {
	return &OutputSystem{messages: messages, sink: sink}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(tick uint64) {
	fresh := s.messages.Since(s.seen)
	s.seen = s.messages.Posted()
	for _, e := range fresh {
		s.sink(tick, e)
	}
}
