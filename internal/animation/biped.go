package animation

import (
	"strings"

	"github.com/udisondev/mobpatch/internal/motion"
)

// Clip lengths in ticks.
const (
	reboundTicks = 6
	reloadTicks  = 25
	deathTicks   = 20
)

// BipedClip names the default biped clip of a motion.
func BipedClip(m motion.LivingMotion) string {
	return "biped/" + strings.ToLower(m.String())
}

// NewBipedAnimator returns an animator with the default biped clip set
// bound to every motion.
func NewBipedAnimator() *ClientAnimator {
	a := NewClientAnimator(Animation{Name: "biped/rebound", Ticks: reboundTicks})

	for _, m := range []motion.LivingMotion{
		motion.Idle, motion.Walk, motion.Run, motion.Fall,
		motion.Mount, motion.Chase, motion.Inaction,
	} {
		a.AddLivingAnimation(m, Animation{Name: BipedClip(m)})
	}
	a.AddLivingAnimation(motion.Death, Animation{Name: BipedClip(motion.Death), Ticks: deathTicks})

	a.AddCompositeAnimation(motion.Aim, Animation{Name: BipedClip(motion.Aim), Aiming: true})
	a.AddCompositeAnimation(motion.Reload, Animation{Name: BipedClip(motion.Reload), Ticks: reloadTicks})
	return a
}
