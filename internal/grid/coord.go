package grid

import (
	"fmt"
	"math"
)

// Coord is a signed tile coordinate. The same type is used for absolute
// world positions and, after division by the chunk size, chunk positions.
type Coord struct {
	X int32
	Y int32
}

func C(x, y int32) Coord { return Coord{X: x, Y: y} }

func (c Coord) Add(o Coord) Coord     { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }
func (c Coord) Sub(o Coord) Coord     { return Coord{X: c.X - o.X, Y: c.Y - o.Y} }
func (c Coord) Mul(k int32) Coord     { return Coord{X: c.X * k, Y: c.Y * k} }
func (c Coord) IsZero() bool          { return c.X == 0 && c.Y == 0 }
func (c Coord) String() string        { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }
func (c Coord) Neighbor(d Dir) Coord  { return c.Add(d.Delta()) }
func (c Coord) Manhattan(o Coord) int { return Manhattan(c, o) }

// Div divides componentwise with Go's truncating division.
// Panics on k == 0 like any integer division.
func (c Coord) Div(k int32) Coord { return Coord{X: c.X / k, Y: c.Y / k} }

// Manhattan returns |dx|+|dy|.
func Manhattan(a, b Coord) int {
	return abs(int(a.X-b.X)) + abs(int(a.Y-b.Y))
}

// Euclidean returns the straight-line distance between two cells.
func Euclidean(a, b Coord) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
