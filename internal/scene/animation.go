package scene

import (
	"math"
	"time"

	"wardrobe-tryon/internal/mathutil"
)

// Animation is the idle breathing motion: a slow vertical oscillation of the
// whole avatar.
type Animation struct {
	BaseY     float64
	Frequency float64 // rad/s
	Amplitude float64 // scene units
}

// DefaultAnimation breathes at 0.5 rad/s with 0.01 units of travel.
var DefaultAnimation = Animation{Frequency: 0.5, Amplitude: 0.01}

// Offset returns the vertical root offset at elapsed time.
func (a Animation) Offset(elapsed time.Duration) float64 {
	return a.BaseY + math.Sin(elapsed.Seconds()*a.Frequency)*a.Amplitude
}

// Frame is the per-frame root transform applied on top of a scene.
type Frame struct {
	Elapsed  time.Duration
	YOffset  float64
	Rotation mathutil.Mat3
}

// StillFrame is a frame with no breathing offset, rotated by deg.
func StillFrame(deg float64) Frame {
	return Frame{Rotation: RootRotation(deg)}
}

// RootRotation converts a rotation in degrees into the single rotation about
// the vertical axis applied at the scene root. Any angle is accepted and
// wrapped into [0, 360) first, so 405 and 45 give the same matrix.
func RootRotation(deg float64) mathutil.Mat3 {
	return mathutil.RotY(mathutil.Deg2Rad(mathutil.NormalizeDeg(deg)))
}

// Root returns the root transform for this frame.
func (f Frame) Root() mathutil.Mat4 {
	rot := f.Rotation
	if rot == (mathutil.Mat3{}) {
		rot = mathutil.Mat3Identity()
	}
	return mathutil.FromMat3Translation(rot, mathutil.Vec3{0, f.YOffset, 0})
}
