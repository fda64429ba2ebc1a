package patch

import (
	"math"

	"github.com/udisondev/mobpatch/internal/model"
)

// MaxAttackPitch bounds head/torso tilt toward a target, in degrees.
const MaxAttackPitch = 30

// PitchToward returns the clamped pitch from eye position from to eye position to.
// Positive when the target is above.
func PitchToward(from, to model.Vec3) float32 {
	d := to.Sub(from)
	horizontal := math.Sqrt(d.X*d.X + d.Z*d.Z)
	deg := float32(math.Atan2(d.Y, horizontal) * (180 / math.Pi))
	return clampPitch(WrapDegrees(deg))
}

// WrapDegrees maps an angle into (-180, 180].
func WrapDegrees(deg float32) float32 {
	f := float32(math.Mod(float64(deg), 360))
	if f > 180 {
		f -= 360
	}
	if f <= -180 {
		f += 360
	}
	return f
}

func clampPitch(deg float32) float32 {
	return max(-MaxAttackPitch, min(MaxAttackPitch, deg))
}
