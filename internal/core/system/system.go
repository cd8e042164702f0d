package system

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: apply queued player input
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: turn scheduling and action resolution
	PhasePostUpdate              // 3: deaths, world streaming
	PhaseOutput                  // 4: drain message log to the host
	PhaseCleanup                 // 5: destroy queued entities
)

var phaseNames = [...]string{"input", "pre_update", "update", "post_update", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements. tick counts from 1.
type System interface {
	Phase() Phase
	Update(tick uint64)
}
