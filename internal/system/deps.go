package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/roguegrid/sim/internal/config"
	"github.com/roguegrid/sim/internal/core/event"
	"github.com/roguegrid/sim/internal/entity"
	"github.com/roguegrid/sim/internal/metrics"
	"github.com/roguegrid/sim/internal/msglog"
	"github.com/roguegrid/sim/internal/path"
	"github.com/roguegrid/sim/internal/scripting"
	"github.com/roguegrid/sim/internal/world"
)

// Deps bundles everything the simulation systems read or mutate. Store and
// Map are required; every other field may be left nil.
type Deps struct {
	Store    *entity.Store
	Map      *world.Map
	Messages *msglog.Log
	Bus      *event.Bus
	Metrics  *metrics.Collector
	Scripts  *scripting.Engine
	Finder   *path.Finder
	Rand     *rand.Rand
	Log      *zap.Logger
	AI       config.AIConfig
}

func (d *Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

func (d *Deps) finder() *path.Finder {
	if d.Finder == nil {
		return &path.Finder{Log: d.Log, Metrics: d.Metrics}
	}
	return d.Finder
}

func (d *Deps) intn(n int) int {
	if d.Rand == nil {
		return rand.Intn(n)
	}
	return d.Rand.Intn(n)
}

func (d *Deps) actionCost() float32 {
	if d.AI.ActionCost <= 0 {
		return 1
	}
	return d.AI.ActionCost
}

func (d *Deps) attackAmount() uint16 {
	if d.AI.AttackAmount == 0 {
		return 1
	}
	return d.AI.AttackAmount
}

func (d *Deps) sightRadius() float64 {
	if d.AI.SightRadius <= 0 {
		return 10
	}
	return d.AI.SightRadius
}
