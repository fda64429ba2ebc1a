package motion

import "github.com/udisondev/mobpatch/internal/model"

// Thresholds of the primary resolution.
const (
	// FallVelocity: vertical velocity below this means the entity is falling.
	FallVelocity = -0.55
	// MoveSpeed: animation speed above this means the entity is translating.
	MoveSpeed = 0.01
)

// Input is the per-tick physical and combat state read by resolvers.
type Input struct {
	Inaction       bool
	Health         float32
	Mounted        bool
	VelocityY      float64
	AnimationSpeed float32
	Aggressive     bool

	UsingItem bool
	UseAnim   model.UseAnim
	// WeaponCharged: main hand holds a loaded crossbow.
	WeaponCharged bool
}

// InputFrom samples entity state. inaction comes from the behavior state
// collaborator and aggressive from the mob flag.
func InputFrom(e *model.LivingEntity, inaction, aggressive bool) Input {
	return Input{
		Inaction:       inaction,
		Health:         e.Health(),
		Mounted:        e.IsPassenger(),
		VelocityY:      e.DeltaMovement().Y,
		AnimationSpeed: e.AnimationSpeed(),
		Aggressive:     aggressive,
		UsingItem:      e.IsUsingItem(),
		UseAnim:        e.ItemInHand(e.UsedHand()).UseAnimation(),
		WeaponCharged:  e.MainHandItem().IsChargedCrossbow(),
	}
}

// Animator is the animation-layer collaborator consulted by the ranged override.
type Animator interface {
	// MiddleLayerRebound reports whether the middle-priority composite layer
	// plays a rebound (recovery) animation.
	MiddleLayerRebound() bool
	// IsAiming reports whether an aiming pose is active.
	IsAiming() bool
	// PlayRebound starts the rebound animation out of aiming.
	PlayRebound()
}

// Resolver computes the motion state for one tick.
type Resolver interface {
	Resolve(in Input, considerInaction bool, anim Animator) State
}

// Primary resolves the primary motion. First matching rule wins:
// inaction, death, mount, fall, movement, idle.
// With chase set, a moving aggressive entity resolves to Chase instead of Walk.
func Primary(in Input, considerInaction, chase bool) LivingMotion {
	if considerInaction && in.Inaction {
		return Inaction
	}
	if in.Health <= 0 {
		return Death
	}
	if in.Mounted {
		return Mount
	}
	if in.VelocityY < FallVelocity {
		return Fall
	}
	if in.AnimationSpeed > MoveSpeed {
		if chase && in.Aggressive {
			return Chase
		}
		return Walk
	}
	return Idle
}

// CompositeOverride applies the ranged composite rules on top of a freshly
// resolved state. It may trigger a rebound on anim as a side effect.
func CompositeOverride(base State, in Input, anim Animator) State {
	out := base

	if in.UsingItem {
		if in.UseAnim == model.UseAnimCrossbow {
			out.Composite = Reload
		} else {
			out.Composite = Aim
		}
	} else if anim != nil && anim.MiddleLayerRebound() {
		out.Composite = None
	}

	// The two branches stay exclusive: a weapon going uncharged mid-aim does
	// not trigger anything beyond the aiming check.
	if in.WeaponCharged {
		out.Composite = Aim
	} else if anim != nil && anim.IsAiming() && out.Composite != Aim {
		anim.PlayRebound()
	}

	return out
}

// Common is the resolver of non-aggressive mobs.
type Common struct{}

// Resolve implements Resolver.
func (Common) Resolve(in Input, considerInaction bool, _ Animator) State {
	m := Primary(in, considerInaction, false)
	return State{Primary: m, Composite: m}
}

// Aggressive is the resolver of melee mobs: moving while aggressive is Chase.
type Aggressive struct{}

// Resolve implements Resolver.
func (Aggressive) Resolve(in Input, considerInaction bool, _ Animator) State {
	m := Primary(in, considerInaction, true)
	return State{Primary: m, Composite: m}
}

// AggressiveRanged adds the aim/reload composite channel to Aggressive.
type AggressiveRanged struct{}

// Resolve implements Resolver.
func (AggressiveRanged) Resolve(in Input, considerInaction bool, anim Animator) State {
	base := Aggressive{}.Resolve(in, considerInaction, anim)
	return CompositeOverride(base, in, anim)
}

// ForStyle returns the resolver variant for a combat style.
func ForStyle(style model.CombatStyle) Resolver {
	switch style {
	case model.StyleMelee:
		return Aggressive{}
	case model.StyleRanged:
		return AggressiveRanged{}
	default:
		return Common{}
	}
}
