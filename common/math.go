package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Round rounds half up, so -0.5 rounds to 0 and 0.5 rounds to 1.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
