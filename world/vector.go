package world

import (
	"math"

	"github.com/milk9111/worldbuilder/levels"
)

// Vector3 is a continuous world location or extent.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance is the euclidean distance between two locations.
func (v Vector3) Distance(o Vector3) float64 {
	return v.Sub(o).Length()
}

// NonNegative clamps every axis to >= 0.
func (v Vector3) NonNegative() Vector3 {
	return Vector3{X: math.Max(0, v.X), Y: math.Max(0, v.Y), Z: math.Max(0, v.Z)}
}

func vectorFromLocation(l levels.Location) Vector3 {
	return Vector3{X: l.X, Y: l.Y, Z: l.Z}
}

func (v Vector3) location() levels.Location {
	return levels.Location{X: v.X, Y: v.Y, Z: v.Z}
}
