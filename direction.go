package wfc

// Direction is one of the four cardinal neighbours of a grid position.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in enumeration order.
var Directions = [4]Direction{Up, Right, Down, Left}

var directionOffsets = [4][2]int{
	Up:    {0, -1},
	Right: {1, 0},
	Down:  {0, 1},
	Left:  {-1, 0},
}

// Opposite returns the direction pointing back: Up<->Down, Right<->Left.
func (d Direction) Opposite() Direction { return (d + 2) & 3 }

// Offset returns the unit coordinate step for d. Y grows downwards.
func (d Direction) Offset() (dx, dy int) {
	o := directionOffsets[d&3]
	return o[0], o[1]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "invalid"
}

// forEachPoint visits every coordinate of a w*h grid in row-major order.
func forEachPoint(w, h int, fn func(x, y int)) {
	for y := range h {
		for x := range w {
			fn(x, y)
		}
	}
}
