package mathutil

import "math"

// CameraTilt looks slightly down at the avatar: Rx(-8°).
var CameraTilt = RotX(Deg2Rad(-8))

// NormalizeDeg wraps an angle in degrees into [0, 360).
func NormalizeDeg(a float64) float64 {
	d := math.Mod(a, 360)
	if d < 0 {
		d += 360
	}
	return d
}
