// Package motion turns raw physical and combat state into discrete animation intents.
package motion

// LivingMotion is a discrete animation intent consumed by the animator.
type LivingMotion int8

const (
	Idle LivingMotion = iota
	Walk
	Run
	Fall
	Mount
	Death
	Chase
	Inaction
	Aim
	Reload
	None
)

// String returns human-readable motion name
func (m LivingMotion) String() string {
	switch m {
	case Idle:
		return "IDLE"
	case Walk:
		return "WALK"
	case Run:
		return "RUN"
	case Fall:
		return "FALL"
	case Mount:
		return "MOUNT"
	case Death:
		return "DEATH"
	case Chase:
		return "CHASE"
	case Inaction:
		return "INACTION"
	case Aim:
		return "AIM"
	case Reload:
		return "RELOAD"
	case None:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// State is the motion pair resolved in one tick.
// Composite is always derived from the Primary of the same resolution.
type State struct {
	Primary   LivingMotion
	Composite LivingMotion
}

// IdleState is the state of a freshly created overlay.
var IdleState = State{Primary: Idle, Composite: Idle}
