package grid

// Dir is one of the four cardinal movement directions.
type Dir uint8

// Neighbour scan order is fixed: West, East, South, North. A* and its goal
// retargeting both depend on this order for reproducible paths.
const (
	West Dir = iota
	East
	South
	North
)

// Cardinals lists the directions in scan order.
var Cardinals = [4]Dir{West, East, South, North}

var dirDelta = [4]Coord{
	West:  {X: -1, Y: 0},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: -1},
	North: {X: 0, Y: 1},
}

var dirName = [4]string{"west", "east", "south", "north"}

func (d Dir) Delta() Coord {
	if int(d) >= len(dirDelta) {
		return Coord{}
	}
	return dirDelta[d]
}

func (d Dir) String() string {
	if int(d) >= len(dirName) {
		return "unknown"
	}
	return dirName[d]
}

// Neighbors returns the four cardinal neighbours of c in scan order.
func Neighbors(c Coord) [4]Coord {
	var out [4]Coord
	for i, d := range Cardinals {
		out[i] = c.Add(d.Delta())
	}
	return out
}
