// Package systems provides the per-tick simulation logic: metabolism,
// sensing, state transitions, locomotion actuators, force application, and
// the safety/recovery layer.
package systems

import "math"

// Tau is one full turn in radians.
const Tau = 2 * math.Pi

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// nonNegative clamps configuration coefficients at point of use.
func nonNegative(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}

func sinF(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

func cosF(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
