package world

import "strings"

// Direction is the facing of an entity. It selects which edge of the hitbox
// leads a move and therefore which tiles are sampled.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction in declaration order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d <= DirRight
}

// Delta returns the unit step for the direction. Invalid directions return (0, 0).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Horizontal reports whether the direction moves along the X axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "invalid"
}

// ParseDirection resolves a direction name, case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// DirectionFromDelta picks the facing for a movement vector. Vertical input wins
// over horizontal, matching the keyboard priority up, down, left, right.
func DirectionFromDelta(dx, dy int) (Direction, bool) {
	switch {
	case dy < 0:
		return DirUp, true
	case dy > 0:
		return DirDown, true
	case dx < 0:
		return DirLeft, true
	case dx > 0:
		return DirRight, true
	}
	return 0, false
}
