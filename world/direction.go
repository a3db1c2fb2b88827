package world

import "fmt"

// Direction is an 8-way facing. Zero means no facing has been chosen.
type Direction uint8

const (
	Zero Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{
	Zero:      "zero",
	North:     "north",
	NorthEast: "northeast",
	East:      "east",
	SouthEast: "southeast",
	South:     "south",
	SouthWest: "southwest",
	West:      "west",
	NorthWest: "northwest",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection accepts the lowercase names produced by String. The empty
// string parses as Zero.
func ParseDirection(s string) (Direction, error) {
	if s == "" {
		return Zero, nil
	}
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return Zero, fmt.Errorf("world: unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Rotate steps the facing by 45 degrees.
func (d Direction) Rotate(clockwise bool) Direction {
	if d == Zero || d > NorthWest {
		if clockwise {
			return North
		}
		return NorthWest
	}
	i := int(d) - 1
	if clockwise {
		i = (i + 1) % 8
	} else {
		i = (i + 7) % 8
	}
	return Direction(i + 1)
}

// Degrees is the clockwise angle from north. Zero faces north.
func (d Direction) Degrees() float64 {
	if d == Zero || d > NorthWest {
		return 0
	}
	return float64(d-1) * 45
}
