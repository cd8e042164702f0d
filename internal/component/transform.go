package component

import "github.com/roguegrid/sim/internal/grid"

// Transform places an entity in the world. GridPosition is authoritative;
// ScreenX/ScreenY are derived for the renderer and recomputed by the
// movement code whenever GridPosition changes.
type Transform struct {
	GridPosition grid.Coord
	ScreenX      float32
	ScreenY      float32
	ScaleX       float32
	ScaleY       float32
}
