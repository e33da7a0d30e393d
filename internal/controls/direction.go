package controls

import (
	"fmt"
	"strings"
)

// Direction is one of the four logical movement commands a key can map to.
type Direction int

const (
	NoDirection Direction = iota
	Forward
	Backward
	TurnLeft
	TurnRight
)

// Directions lists the mappable directions in table order.
var Directions = []Direction{Forward, Backward, TurnLeft, TurnRight}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection accepts the config name of a direction or one of its
// aliases ("up", "down", "back", "turn-left", ...).
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "forward", "up":
		return Forward, nil
	case "backward", "back", "down":
		return Backward, nil
	case "left", "turn-left", "turnleft":
		return TurnLeft, nil
	case "right", "turn-right", "turnright":
		return TurnRight, nil
	}
	return NoDirection, fmt.Errorf("unknown direction %q", name)
}
