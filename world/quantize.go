package world

import "math"

// Tolerance is the coordinate resolution. Values closer than this collapse to
// one key; values exactly one tolerance apart do not.
const Tolerance = 1e-4

const stepsPerUnit = 10000

// Quantize rounds v to the nearest multiple of Tolerance and returns the
// multiple as an integer step count.
func Quantize(v float64) int64 {
	return int64(math.Floor(v*stepsPerUnit + 0.5))
}

// Dequantize is the inverse of Quantize for an integer step count.
func Dequantize(q int64) float64 {
	return float64(q) / stepsPerUnit
}

// snapCell rounds a quantized value to the nearest whole cell. Done on the
// integer step count so x.5 boundaries are exact.
func snapCell(q int64) int {
	n := q + stepsPerUnit/2
	c := n / stepsPerUnit
	if n%stepsPerUnit != 0 && n < 0 {
		c--
	}
	return int(c)
}

// TileKey identifies one grid cell: whole-cell x/y and a quantized depth.
type TileKey struct {
	X int
	Y int
	Z int64
}

// KeyOf derives the storage key for a continuous location.
func KeyOf(loc Vector3) TileKey {
	return TileKey{
		X: snapCell(Quantize(loc.X)),
		Y: snapCell(Quantize(loc.Y)),
		Z: Quantize(loc.Z),
	}
}

// Location returns the cell center a key stands for.
func (k TileKey) Location() Vector3 {
	return Vector3{X: float64(k.X), Y: float64(k.Y), Z: Dequantize(k.Z)}
}

// Depth is the plane depth of the key.
func (k TileKey) Depth() float64 {
	return Dequantize(k.Z)
}
