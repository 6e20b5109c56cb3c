package services

import "math"

// RoundUp rounds x up to the next multiple of step. Never rounds down.
func RoundUp(x, step float64) float64 {
	if step <= 0 {
		return x
	}
	return math.Ceil(x/step-roundingEpsilon) * step
}

// RoundUpDecimals rounds x up to the given number of decimal places.
func RoundUpDecimals(x float64, places int) float64 {
	return RoundUp(x, math.Pow10(-places))
}
