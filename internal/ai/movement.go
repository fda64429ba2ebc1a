package ai

import (
	"math"

	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/patch"
)

// Movement and combat constants.
const (
	// attackReach is the horizontal distance at which melee attacks land.
	attackReach = 2.0
	// rangedReach is the distance at which ranged mobs stop and shoot.
	rangedReach = 12.0
	// forgetRangeFactor × aggro range drops the target.
	forgetRangeFactor = 2.0
	// gravity applied to vertical velocity while airborne.
	gravity = 0.08
)

// ScanFunc returns living entities within radius of center, excluding exclude.
// Injected by the spawn factory to avoid an import cycle with world.
type ScanFunc func(center model.Vec3, radius float64, exclude uint32) []*model.LivingEntity

// stepToward moves e horizontally toward to by at most speed blocks and
// updates the walk animation speed. Returns the remaining horizontal distance.
func stepToward(e *model.LivingEntity, to model.Vec3, speed float64) float64 {
	pos := e.Position()
	d := to.Sub(pos)
	dist := d.HorizontalLength()
	if dist < 1e-6 {
		stand(e)
		return 0
	}

	step := min(speed, dist)
	nx, nz := d.X/dist*step, d.Z/dist*step
	e.SetPosition(model.NewVec3(pos.X+nx, pos.Y, pos.Z+nz))
	e.SetDeltaMovement(model.NewVec3(nx, e.DeltaMovement().Y, nz))
	e.SetAnimationSpeed(float32(step))
	return dist - step
}

// stand stops horizontal movement.
func stand(e *model.LivingEntity) {
	v := e.DeltaMovement()
	e.SetDeltaMovement(model.NewVec3(0, v.Y, 0))
	e.SetAnimationSpeed(0)
}

// lookAt turns the view pitch toward target's eyes.
func lookAt(e, target *model.LivingEntity) {
	// view pitch is negative when looking up
	e.SetXRot(-patch.PitchToward(e.EyePosition(1), target.EyePosition(1)))
}

// applyGravity integrates vertical velocity; y = 0 is the ground plane.
func applyGravity(e *model.LivingEntity) {
	pos := e.Position()
	v := e.DeltaMovement()
	if pos.Y <= 0 && v.Y <= 0 {
		if v.Y != 0 {
			e.SetDeltaMovement(model.NewVec3(v.X, 0, v.Z))
		}
		return
	}
	ny := math.Max(0, pos.Y+v.Y)
	e.SetPosition(model.NewVec3(pos.X, ny, pos.Z))
	e.SetDeltaMovement(model.NewVec3(v.X, v.Y-gravity, v.Z))
}

// horizontalDistance between two entities.
func horizontalDistance(a, b *model.LivingEntity) float64 {
	return b.Position().Sub(a.Position()).HorizontalLength()
}
